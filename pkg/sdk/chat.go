package ragchat

import (
	"context"
	"net/http"
)

// Chat sends one message and returns the grounded answer.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	var resp ChatResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/chat", req, &resp); err != nil {
		return ChatResponse{}, err
	}
	return resp, nil
}
