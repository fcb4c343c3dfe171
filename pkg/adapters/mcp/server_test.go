package mcp

import (
	"context"
	"testing"

	"github.com/aretw0/attlookup"
	"github.com/aretw0/attlookup/pkg/adapters/memory"
	"github.com/aretw0/attlookup/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catTable = "0\t1\tc\tc\n" +
	"1\t2\ta\ta\n" +
	"2\t3\tt\tt\n" +
	"3\t4\t+Sg\t@0@\n" +
	"3\t5\t+Pl\ts\t0.5\n" +
	"4\n" +
	"5\t0.25\n"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	eng, err := attlookup.New("", attlookup.WithLoader(memory.NewLoader(map[string]string{"cat": catTable})))
	require.NoError(t, err)
	return NewServer(eng)
}

func TestHandleApply(t *testing.T) {
	s := newTestServer(t)
	res, err := s.handleApply(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"automaton": "cat",
		"word":      "cats",
		"direction": "up",
		"limit":     float64(5), // JSON numbers arrive as float64
		"tokens":    true,
	})
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, "cat+Pl", res.Results[0].Output)
	assert.Equal(t, []string{"c", "a", "t", "+Pl"}, res.Results[0].Tokens)
	assert.False(t, res.Truncated)
}

func TestHandleApply_Errors(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.handleApply(ctx, mcp.CallToolRequest{}, map[string]interface{}{"automaton": "nope", "word": "x"})
	assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)

	_, err = s.handleApply(ctx, mcp.CallToolRequest{}, map[string]interface{}{"automaton": "cat", "word": "x", "direction": "left"})
	assert.ErrorIs(t, err, domain.ErrInvalidDirection)

	_, err = s.handleApply(ctx, mcp.CallToolRequest{}, map[string]interface{}{"automaton": "cat", "limit": "many"})
	assert.Error(t, err)
}

func TestHandleTokenize(t *testing.T) {
	s := newTestServer(t)
	res, err := s.handleTokenize(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"automaton": "cat",
		"word":      "cat+Sg",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "t", "+Sg"}, res.Tokens)
}

func TestHandleList(t *testing.T) {
	s := newTestServer(t)
	res, err := s.handleList(context.Background(), mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat"}, res.Automata)
}

func TestReadAutomata(t *testing.T) {
	s := newTestServer(t)
	contents, err := s.readAutomata(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.JSONEq(t, `{"automata":["cat"]}`, text.Text)
}
