package oauth

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
)

// PromptCodeSource prints the authorization URL and reads the code the user pastes back.
type PromptCodeSource struct {
	In  io.Reader
	Out io.Writer
}

func (p PromptCodeSource) Code(ctx context.Context, authURL, state string) (string, error) {
	fmt.Fprintf(p.Out, "\nOpen this URL in your browser to connect this app with Google:\n\n  %v\n", authURL)
	fmt.Fprintf(p.Out, "\nPaste the 'code' parameter from the redirect URL here to finish authorization: ")

	type line struct {
		code string
		err  error
	}

	read := make(chan line, 1)

	// The reader goroutine is abandoned if ctx completes first: there is no way to
	// interrupt a blocked read on stdin.
	go func() {
		scanner := bufio.NewScanner(p.In)
		if scanner.Scan() {
			read <- line{code: strings.TrimSpace(scanner.Text())}
		} else if err := scanner.Err(); err != nil {
			read <- line{err: err}
		} else {
			read <- line{err: io.ErrUnexpectedEOF}
		}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()

	case l := <-read:
		if l.err != nil {
			return "", fmt.Errorf("unable to read authorization code (%v)", l.err)
		}

		if l.code == "" {
			return "", fmt.Errorf("no authorization code entered")
		}

		return l.code, nil
	}
}

// LoopbackCodeSource receives the authorization code on a localhost redirect. The OAuth2
// client must be configured with a redirect URL for the same address.
type LoopbackCodeSource struct {
	Addr     string
	Listener net.Listener
	Browser  func(url string) error
	Out      io.Writer
}

func (l LoopbackCodeSource) Code(ctx context.Context, authURL, state string) (string, error) {
	ln := l.Listener
	if ln == nil {
		listener, err := net.Listen("tcp", l.Addr)
		if err != nil {
			return "", fmt.Errorf("unable to start redirect listener on %v (%v)", l.Addr, err)
		}

		ln = listener
	}

	type callback struct {
		code string
		err  error
	}

	authorised := make(chan callback, 1)
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, rq *http.Request) {
		if rq.FormValue("state") != state {
			http.Error(w, "Invalid authorization state", http.StatusBadRequest)
			return
		}

		var cb callback
		if e := rq.FormValue("error"); e != "" {
			cb.err = fmt.Errorf("authorization denied (%v)", e)
			fmt.Fprintln(w, "Authorization denied - you can close this window.")
		} else if code := rq.FormValue("code"); code != "" {
			cb.code = code
			fmt.Fprintln(w, "Authorized - you can close this window and return to the console.")
		} else {
			http.Error(w, "Missing authorization code", http.StatusBadRequest)
			return
		}

		select {
		case authorised <- cb:
		default:
		}
	})

	srv := &http.Server{
		Handler: mux,
	}

	served := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			served <- err
		}
	}()

	defer srv.Shutdown(context.Background())

	if l.Browser == nil || l.Browser(authURL) != nil {
		if l.Out != nil {
			fmt.Fprintf(l.Out, "\nCould not open the authorization page in your browser - please open this URL manually:\n\n  %v\n\n", authURL)
		}
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()

	case err := <-served:
		return "", fmt.Errorf("redirect listener failed (%v)", err)

	case cb := <-authorised:
		return cb.code, cb.err
	}
}
