package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/acikkaynak/interpreter-search-go/pkg/logger"
	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const defaultTimeout = 25 * time.Second

type index[T any] struct {
	client  *fasthttp.Client
	connStr string
	name    string
}

func newIndex[T any](connStr, name string) *index[T] {
	return &index[T]{
		client:  &fasthttp.Client{Name: "interpreter-search-go"},
		connStr: strings.TrimRight(connStr, "/"),
		name:    name,
	}
}

func (i *index[T]) Bulk(ctx context.Context, items []Item[T]) error {
	if len(items) == 0 {
		return nil
	}

	var payload []byte
	for _, item := range items {
		payload = append(payload, []byte(`{"index":{"_index":"`+i.name+`","_id":"`+item.Id+`"}}`)...)
		payload = append(payload, '\n')
		source, err := jsoniter.Marshal(item.Source)
		if err != nil {
			return fmt.Errorf("could not encode document %s: %w", item.Id, err)
		}
		payload = append(payload, source...)
		payload = append(payload, '\n')
	}

	var response BulkResponse
	if err := i.do(ctx, fasthttp.MethodPost, "/_bulk", "application/x-ndjson", payload, &response); err != nil {
		return err
	}

	if response.Errors {
		failed := 0
		for _, item := range response.Items {
			if item.Index.Error != nil {
				failed++
			}
		}
		log.Logger().Error("elastic bulk write had failures", zap.String("index", i.name), zap.Int("failed", failed))
		return fmt.Errorf("elastic bulk write failed for %d of %d documents", failed, len(items))
	}

	log.Logger().Info("elastic bulk write", zap.String("index", i.name), zap.Int("documents", len(items)))
	return nil
}

func (i *index[T]) Search(ctx context.Context, query map[string]interface{}) (*Result[T], error) {
	payload, err := jsoniter.Marshal(query)
	if err != nil {
		return nil, err
	}

	var response Result[T]
	if err := i.do(ctx, fasthttp.MethodPost, "/"+i.name+"/_search", "application/json", payload, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (i *index[T]) Count(ctx context.Context, query map[string]interface{}) (int, error) {
	payload, err := jsoniter.Marshal(query)
	if err != nil {
		return 0, err
	}

	var response CountResponse
	if err := i.do(ctx, fasthttp.MethodPost, "/"+i.name+"/_count", "application/json", payload, &response); err != nil {
		return 0, err
	}
	return response.Count, nil
}

// Create creates the index with mapping. An existing index is left as is.
func (i *index[T]) Create(ctx context.Context, mapping map[string]interface{}) error {
	payload, err := jsoniter.Marshal(mapping)
	if err != nil {
		return err
	}

	err = i.do(ctx, fasthttp.MethodPut, "/"+i.name, "application/json", payload, nil)
	if err != nil && strings.Contains(err.Error(), "resource_already_exists_exception") {
		return nil
	}
	return err
}

func (i *index[T]) do(ctx context.Context, method, path, contentType string, body []byte, out interface{}) error {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	res := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(res)

	req.SetBody(body)
	req.Header.SetMethod(method)
	req.Header.SetContentType(contentType)
	req.SetRequestURI(i.connStr + path)

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(defaultTimeout)
	}

	if err := i.client.DoDeadline(req, res, deadline); err != nil {
		return fmt.Errorf("elastic %s %s: %w", method, path, err)
	}

	if status := res.StatusCode(); status >= fasthttp.StatusBadRequest {
		return fmt.Errorf("elastic %s %s returned %d: %s", method, path, status, truncate(res.Body(), 512))
	}

	if out == nil {
		return nil
	}
	if err := jsoniter.Unmarshal(res.Body(), out); err != nil {
		return fmt.Errorf("could not decode elastic response: %w", err)
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n])
	}
	return string(b)
}
