package graylog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Streams lists the streams visible to the authenticated token. Unlike the
// other GET operations there is no absent form: a response other than 200 is
// reported as an error.
func (c *Client) Streams(ctx context.Context) ([]Stream, error) {
	res, ok, err := c.Get(ctx, "streams")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("list streams: server returned no result")
	}

	var streams []Stream
	if err := json.Unmarshal([]byte(res.Get("streams").Raw), &streams); err != nil {
		return nil, fmt.Errorf("decode streams field: %w", err)
	}
	return streams, nil
}

// Stream fetches a single stream by ID. The boolean reports whether the
// server returned the stream.
func (c *Client) Stream(ctx context.Context, streamID string) (Stream, bool, error) {
	res, ok, err := c.Get(ctx, "streams/"+url.PathEscape(streamID))
	if err != nil || !ok {
		return Stream{}, false, err
	}

	var stream Stream
	if err := json.Unmarshal([]byte(res.Raw), &stream); err != nil {
		return Stream{}, false, fmt.Errorf("decode stream %s: %w", streamID, err)
	}
	return stream, true, nil
}
