package publishers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/tickstream-hq/tardis-harvester/internal/domain"
)

type fakeSNSClient struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNSClient) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-123")}, nil
}

func TestSNSPublisherSendsEvent(t *testing.T) {
	client := &fakeSNSClient{}
	pub := &snsPublisher{
		id:       "topic-1",
		typ:      TypeSNS,
		topicARN: "arn:aws:sns:::instruments",
		client:   client,
		log:      noopLogger{},
	}

	evt := NewEvent(domain.ChangeDelisted, "bitmex", "XBTUSD", nil)
	if err := pub.Publish(context.Background(), evt); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.TopicArn); got != "arn:aws:sns:::instruments" {
		t.Fatalf("TopicArn = %s", got)
	}
	attr, ok := client.input.MessageAttributes["exchange"]
	if !ok || aws.ToString(attr.StringValue) != "bitmex" {
		t.Fatalf("exchange attribute missing or wrong: %#v", attr)
	}
	if !strings.Contains(aws.ToString(client.input.Message), `"symbol":"XBTUSD"`) {
		t.Fatalf("Message missing symbol: %s", aws.ToString(client.input.Message))
	}
}

func TestSNSPublisherSendError(t *testing.T) {
	client := &fakeSNSClient{err: errors.New("boom")}
	pub := &snsPublisher{
		id:       "topic-1",
		typ:      TypeSNS,
		topicARN: "arn:aws:sns:::instruments",
		client:   client,
		log:      noopLogger{},
	}

	if err := pub.Publish(context.Background(), Event{Exchange: "bitmex"}); err == nil {
		t.Fatalf("expected error from Publish")
	}
}
