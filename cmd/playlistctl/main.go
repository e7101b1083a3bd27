// Package main provides a command line front end to the playlist duration calculator.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/charmbracelet/huh/spinner"
	"github.com/cockroachdb/errors"

	"playlist-duration/domain/apperror"
	"playlist-duration/domain/dto"
	"playlist-duration/domain/model"
	"playlist-duration/domain/repository"
	youtubeclient "playlist-duration/infrastructure/clients/youtube"
	"playlist-duration/infrastructure/configuration"
	"playlist-duration/usecase"
)

var (
	app    = kingpin.New("playlistctl", "Total running time of a YouTube playlist")
	apiKey = app.Flag("api-key", "YouTube Data API key (or set YOUTUBE_API_KEY env)").Envar("YOUTUBE_API_KEY").String()

	// calc command
	calcCmd  = app.Command("calc", "Calculate the duration of a playlist")
	calcURL  = calcCmd.Arg("url", "Playlist URL or link containing a list parameter").Required().String()
	calcJSON = calcCmd.Flag("json", "Print the result as JSON").Bool()

	// parse-duration command
	parseCmd  = app.Command("parse-duration", "Convert an ISO 8601 duration such as PT1H2M3S to seconds")
	parseText = parseCmd.Arg("duration", "ISO 8601 duration").Required().String()

	// extract-id command
	extractCmd = app.Command("extract-id", "Print the playlist id found in a URL")
	extractURL = extractCmd.Arg("url", "Playlist URL").Required().String()
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch command {
	case calcCmd.FullCommand():
		err = calc(ctx, os.Stdout, *calcURL, *calcJSON)
	case parseCmd.FullCommand():
		err = parseDuration(os.Stdout, *parseText)
	case extractCmd.FullCommand():
		err = extractID(os.Stdout, *extractURL)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func calc(ctx context.Context, w io.Writer, rawURL string, asJSON bool) error {
	youtubeConfig := configuration.GetYouTubeConfig()
	if *apiKey != "" {
		youtubeConfig.APIKey = *apiKey
	}

	var client repository.IYouTube
	if usecase.CredentialConfigured(youtubeConfig.APIKey) {
		c, err := youtubeclient.NewYouTubeClient(ctx, &youtubeclient.Config{
			APIKey:         youtubeConfig.APIKey,
			Endpoint:       youtubeConfig.Endpoint,
			RequestTimeout: youtubeConfig.RequestTimeout,
		})
		if err != nil {
			return errors.Wrap(err, "failed to create YouTube client")
		}
		client = c
	}
	playlistUseCase := usecase.NewPlaylistUseCase(client, usecase.PlaylistConfig{
		APIKey:           youtubeConfig.APIKey,
		BatchConcurrency: youtubeConfig.BatchConcurrency,
	})

	var result *model.PlaylistResult
	run := func(ctx context.Context) error {
		var err error
		result, err = playlistUseCase.Calculate(ctx, &dto.PlaylistRequest{URL: rawURL})
		return err
	}
	if err := spinner.New().Title("Calculating playlist duration...").Context(ctx).ActionWithErr(run).Run(); err != nil {
		if appErr := apperror.Classify(err); appErr != nil {
			return errors.New(appErr.Message)
		}
		return err
	}
	return printResult(w, result, asJSON)
}

func printResult(w io.Writer, result *model.PlaylistResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	d := result.Duration
	_, err := fmt.Fprintf(w, "%s\nVideos:   %d\nDuration: %dd %02dh %02dm %02ds (%d seconds)\n",
		result.Title, result.VideoCount, d.Days, d.Hours, d.Minutes, d.Seconds, result.TotalSeconds)
	return err
}

func parseDuration(w io.Writer, text string) error {
	seconds := usecase.ParseDuration(text)
	d := usecase.FormatDuration(seconds)
	_, err := fmt.Fprintf(w, "%d seconds (%dd %02dh %02dm %02ds)\n", seconds, d.Days, d.Hours, d.Minutes, d.Seconds)
	return err
}

func extractID(w io.Writer, rawURL string) error {
	id, ok := usecase.ExtractPlaylistID(rawURL)
	if !ok {
		return errors.New(apperror.MsgInvalidPlaylistURL)
	}
	_, err := fmt.Fprintln(w, id)
	return err
}
