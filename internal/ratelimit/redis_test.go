package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeScripter answers the window script with an incrementing counter and a
// fixed ttl, recording what the limiter sent.
type fakeScripter struct {
	count int64
	ttlMs int64
	reply interface{}
	err   error

	keys [][]string
	args [][]interface{}
}

func (f *fakeScripter) run(keys []string, args []interface{}) *redis.Cmd {
	f.keys = append(f.keys, keys)
	f.args = append(f.args, args)
	if f.err != nil {
		return redis.NewCmdResult(nil, f.err)
	}
	if f.reply != nil {
		return redis.NewCmdResult(f.reply, nil)
	}
	f.count++
	return redis.NewCmdResult([]interface{}{f.count, f.ttlMs}, nil)
}

func (f *fakeScripter) Eval(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	return f.run(keys, args)
}

func (f *fakeScripter) EvalSha(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	return f.run(keys, args)
}

func (f *fakeScripter) EvalRO(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	return f.run(keys, args)
}

func (f *fakeScripter) EvalShaRO(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	return f.run(keys, args)
}

func (f *fakeScripter) ScriptExists(context.Context, ...string) *redis.BoolSliceCmd {
	return redis.NewBoolSliceResult([]bool{true}, nil)
}

func (f *fakeScripter) ScriptLoad(context.Context, string) *redis.StringCmd {
	return redis.NewStringResult("", nil)
}

func TestRedis_AllowsUpToLimitThenBlocks(t *testing.T) {
	client := &fakeScripter{ttlMs: 42_000}
	l := NewRedis(client, "flowlytix:rate_limit", 2, time.Minute)
	ctx := context.Background()

	d, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 2, d.Limit)
	assert.Equal(t, 1, d.Remaining)
	assert.Equal(t, 42*time.Second, d.RetryAfter)

	d, err = l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)

	d, err = l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
	assert.Equal(t, 42*time.Second, d.RetryAfter)

	require.Len(t, client.keys, 3)
	assert.Equal(t, []string{"flowlytix:rate_limit:10.0.0.1"}, client.keys[0])
	assert.Equal(t, []interface{}{int64(60_000)}, client.args[0])
}

func TestRedis_NegativeTTLFallsBackToWindow(t *testing.T) {
	l := NewRedis(&fakeScripter{ttlMs: -1}, "", 5, 30*time.Second)

	d, err := l.Allow(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 30*time.Second, d.RetryAfter)
}

func TestRedis_ScriptFailureIsWrapped(t *testing.T) {
	refused := errors.New("dial tcp: connection refused")
	l := NewRedis(&fakeScripter{err: refused}, "", 5, time.Minute)

	_, err := l.Allow(context.Background(), "a")
	require.ErrorIs(t, err, refused)
	assert.ErrorContains(t, err, "redis limiter")
}

func TestRedis_UnexpectedReplyIsAnError(t *testing.T) {
	l := NewRedis(&fakeScripter{reply: "OK"}, "", 5, time.Minute)

	_, err := l.Allow(context.Background(), "a")
	assert.ErrorContains(t, err, "response shape")
}
