package publishers

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

func TestSNSPublisherSuccess(t *testing.T) {
	client := &fakeSNSClient{}
	pub := &snsPublisher{
		id:       "topic",
		topicARN: "arn:aws:sns:::topic",
		client:   client,
		log:      noopLogger{},
	}

	require.NoError(t, pub.Publish(context.Background(), testEvent(t)))
	require.NotNil(t, client.input, "client was not called")
	assert.Equal(t, "arn:aws:sns:::topic", aws.ToString(client.input.TopicArn))

	attr, ok := client.input.MessageAttributes["source_id"]
	require.True(t, ok)
	assert.Equal(t, "source-1", aws.ToString(attr.StringValue))
	assert.Contains(t, aws.ToString(client.input.Message), `"source_name":"Source One"`)
	assert.Nil(t, client.input.MessageGroupId, "standard topics carry no group id")
}

func TestSNSPublisherFIFOTopic(t *testing.T) {
	client := &fakeSNSClient{}
	pub := &snsPublisher{id: "fifo", topicARN: "arn:aws:sns:us-east-1:000000000000:posts.fifo", client: client, log: noopLogger{}}
	evt := testEvent(t)

	require.NoError(t, pub.Publish(context.Background(), evt))
	assert.Equal(t, "source-1", aws.ToString(client.input.MessageGroupId))
	assert.Equal(t, evt.EventID, aws.ToString(client.input.MessageDeduplicationId))
}

func TestSNSPublisherError(t *testing.T) {
	pub := &snsPublisher{
		id:       "topic",
		topicARN: "arn:aws:sns:::topic",
		client:   &fakeSNSClient{err: errors.New("boom")},
		log:      noopLogger{},
	}

	assert.Error(t, pub.Publish(context.Background(), testEvent(t)))
}
