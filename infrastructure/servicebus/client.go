package servicebus

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
	"github.com/cockroachdb/errors"
)

// NewServiceBus connects to a Service Bus namespace (e.g. "myns.servicebus.windows.net")
// with the default Azure credential chain.
func NewServiceBus(namespace string) (*azservicebus.Client, error) {
	if namespace == "" {
		return nil, errors.New("service bus namespace is not configured")
	}
	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to obtain azure credential")
	}
	client, err := azservicebus.NewClient(namespace, credential, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create service bus client for %s", namespace)
	}
	return client, nil
}
