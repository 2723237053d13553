package oauth

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPromptCodeSource(t *testing.T) {
	var out strings.Builder

	prompt := PromptCodeSource{
		In:  strings.NewReader("  4/0AX4XfWh-code \n"),
		Out: &out,
	}

	code, err := prompt.Code(context.Background(), "https://accounts.google.com/o/oauth2/auth?state=xyz", "xyz")
	require.NoError(t, err)
	require.Equal(t, "4/0AX4XfWh-code", code)
	require.Contains(t, out.String(), "https://accounts.google.com/o/oauth2/auth?state=xyz")
}

func TestPromptCodeSourceWithEmptyInput(t *testing.T) {
	prompt := PromptCodeSource{In: strings.NewReader(""), Out: io.Discard}

	_, err := prompt.Code(context.Background(), "https://example.com", "xyz")
	require.Error(t, err)

	prompt = PromptCodeSource{In: strings.NewReader("\n"), Out: io.Discard}

	_, err = prompt.Code(context.Background(), "https://example.com", "xyz")
	require.Error(t, err)
}

func TestPromptCodeSourceTimeout(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := PromptCodeSource{In: r, Out: io.Discard}.Code(ctx, "https://example.com", "xyz")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLoopbackCodeSource(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	redirect := fmt.Sprintf("http://%v/", ln.Addr())

	loopback := LoopbackCodeSource{
		Listener: ln,
		Browser: func(url string) error {
			// wrong state first, which must be ignored
			rsp, err := http.Get(redirect + "?state=forged&code=evil")
			if err != nil {
				return err
			}
			rsp.Body.Close()
			require.Equal(t, http.StatusBadRequest, rsp.StatusCode)

			rsp, err = http.Get(redirect + "?state=xyz&code=4/0AX4XfWh-code&scope=spreadsheets")
			if err != nil {
				return err
			}
			rsp.Body.Close()

			return nil
		},
	}

	code, err := loopback.Code(context.Background(), "https://accounts.google.com/o/oauth2/auth?state=xyz", "xyz")
	require.NoError(t, err)
	require.Equal(t, "4/0AX4XfWh-code", code)
}

func TestLoopbackCodeSourceDenied(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	loopback := LoopbackCodeSource{
		Listener: ln,
		Browser: func(url string) error {
			rsp, err := http.Get(fmt.Sprintf("http://%v/?state=xyz&error=access_denied", ln.Addr()))
			if err == nil {
				rsp.Body.Close()
			}
			return err
		},
	}

	_, err = loopback.Code(context.Background(), "https://example.com", "xyz")
	require.Error(t, err)
}

func TestLoopbackCodeSourceTimeout(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var out strings.Builder
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = LoopbackCodeSource{Listener: ln, Out: &out}.Code(ctx, "https://example.com/auth", "xyz")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Contains(t, out.String(), "https://example.com/auth")
}
