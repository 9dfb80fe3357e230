package uacp

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/rob-gra/go-opcua/ua"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	body := []byte("hello world")
	require.NoError(t, WriteFrame(&buf, MessageTypeHello, ChunkFinal, body))

	f, err := ReadFrame(&buf, 0)
	require.NoError(t, err)
	assert.Equal(t, MessageTypeHello, f.Type)
	assert.Equal(t, ChunkFinal, f.Chunk)
	assert.Equal(t, body, f.Body)
}

func TestReadFrameRejectsOversize(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, MessageTypeMessage, ChunkFinal, make([]byte, 100)))
	_, err := ReadFrame(&buf, 16)
	assert.Error(t, err)
}

func TestNegotiateLimitsTakesElementwiseMin(t *testing.T) {
	hello := Hello{ReceiveBufferSize: 8192, SendBufferSize: 8192, MaxMessageSize: 1 << 20, MaxChunkCount: 64}
	ack := Acknowledge{ReceiveBufferSize: 4096, SendBufferSize: 65536, MaxMessageSize: 1 << 16, MaxChunkCount: 0}

	limits := NegotiateLimits(hello, ack)
	assert.Equal(t, uint32(4096), limits.SendBufferSize)     // min(hello.Send, ack.Receive)
	assert.Equal(t, uint32(8192), limits.ReceiveBufferSize)  // min(hello.Receive, ack.Send)
	assert.Equal(t, uint32(1<<16), limits.MaxMessageSize)
	assert.Equal(t, uint32(64), limits.MaxChunkCount) // zero on one side defers to the other
}

func TestDialPerformsHandshake(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	done := make(chan error, 1)
	go func() {
		nc, err := ln.Accept()
		if err != nil {
			done <- err
			return
		}
		defer nc.Close()

		f, err := ReadFrame(nc, 0)
		if err != nil {
			done <- err
			return
		}
		if f.Type != MessageTypeHello {
			done <- err
			return
		}
		ack := Acknowledge{ProtocolVersion: 0, ReceiveBufferSize: 8192, SendBufferSize: 8192, MaxMessageSize: 1 << 16, MaxChunkCount: 0}
		e := ua.NewEncoder(32)
		ack.Encode(e)
		done <- WriteFrame(nc, MessageTypeAcknowledge, ChunkFinal, e.Bytes())
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	local := Hello{ReceiveBufferSize: 65536, SendBufferSize: 65536, MaxMessageSize: 1 << 20, MaxChunkCount: 0}
	conn, err := Dial(ctx, ln.Addr().String(), "opc.tcp://127.0.0.1/test", local)
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, uint32(8192), conn.Limits.SendBufferSize)
	require.NoError(t, <-done)
}
