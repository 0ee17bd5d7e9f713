package client

import (
	"context"
	"net/http"

	"golang.org/x/xerrors"
)

// Ping checks that the proof server answers on its health endpoint.
// Proof generation happens locally even against a remote network, so an
// unreachable proof server means transactions could never be built.
func Ping(ctx context.Context, proofServer string) error {
	req, err := http.NewRequestWithContext(ctx, "GET", proofServer+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return xerrors.New(resp.Status)
	}
	return nil
}
