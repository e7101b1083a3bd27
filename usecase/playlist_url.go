package usecase

import (
	"net/url"
	"regexp"
	"strings"
)

const youtubeHostMarker = "youtube.com"

var (
	playlistIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	listParamPattern  = regexp.MustCompile(`\blist=([A-Za-z0-9_-]+)`)
)

// ExtractPlaylistID finds the playlist id in a pasted link. A parsed youtube.com
// URL's "list" query parameter wins; otherwise the raw text is searched for
// "list=<id>", which also covers links without a scheme. ok is false when
// neither attempt finds an id.
func ExtractPlaylistID(rawURL string) (id string, ok bool) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", false
	}
	for _, attempt := range []func(string) (string, bool){listFromParsedURL, listFromRawText} {
		if id, ok := attempt(rawURL); ok {
			return id, true
		}
	}
	return "", false
}

func listFromParsedURL(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || !strings.Contains(strings.ToLower(u.Hostname()), youtubeHostMarker) {
		return "", false
	}
	id := u.Query().Get("list")
	if !playlistIDPattern.MatchString(id) {
		return "", false
	}
	return id, true
}

func listFromRawText(rawURL string) (string, bool) {
	match := listParamPattern.FindStringSubmatch(rawURL)
	if match == nil {
		return "", false
	}
	return match[1], true
}
