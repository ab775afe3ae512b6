package broker

import (
	"strconv"

	"github.com/Shopify/sarama"
	jsoniter "github.com/json-iterator/go"
)

const GeocodeTopicName = "topic.interpreters.geocode"

// GeocodeRequest asks the consumer to resolve and store the coordinates of
// one interpreter.
type GeocodeRequest struct {
	ID      int64  `json:"id"`
	EventID string `json:"event_id"`
}

func (r GeocodeRequest) Message() (*sarama.ProducerMessage, error) {
	value, err := jsoniter.Marshal(r)
	if err != nil {
		return nil, err
	}
	return &sarama.ProducerMessage{
		Topic: GeocodeTopicName,
		Key:   sarama.StringEncoder(strconv.FormatInt(r.ID, 10)),
		Value: sarama.ByteEncoder(value),
	}, nil
}

func DecodeGeocodeRequest(value []byte) (GeocodeRequest, error) {
	var r GeocodeRequest
	err := jsoniter.Unmarshal(value, &r)
	return r, err
}
