package bootstrap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SamukeloGift/Brewery/internal/domain/install"
	"github.com/SamukeloGift/Brewery/internal/logger"
	"github.com/SamukeloGift/Brewery/internal/ui"
	"github.com/SamukeloGift/Brewery/internal/version"
)

const (
	// artifactFileMode is for the program file; the runner reads it,
	// nobody executes it directly.
	artifactFileMode = 0o644
	// shortSHALength matches the project's short commit notation.
	shortSHALength = 7
)

var errBadHTTPStatus = errors.New("unexpected http status")

// fetchArtifact streams the program file from the artifact endpoint into
// the install root. Placement is atomic: the destination either keeps its
// previous contents or holds the complete new file, and a failed transfer
// leaves no temporary file behind.
func (r *runner) fetchArtifact(ctx context.Context) error {
	response, err := r.get(ctx, r.cfg.ArtifactURL)
	if response != nil {
		defer func() {
			_ = response.Body.Close()
		}()
	}

	if err != nil {
		return err
	}

	spinner := ui.NewSpinner(r.printer.Out())
	spinner.Start("downloading " + install.ArtifactName)

	err = r.executor.PlaceFile(ctx, r.plan.ArtifactPath(), response.Body, artifactFileMode)

	spinner.Stop()
	spinner.Wait()

	if err != nil {
		return err
	}

	r.printer.Successf("%s in place", install.ArtifactName)

	return nil
}

// commitInfo is the slice of the commits endpoint answer the marker needs.
type commitInfo struct {
	SHA string `json:"sha"`
}

// fetchVersionMarker records the artifact's commit in the VERSION file.
// Strictly best-effort: any failure is logged and skipped, the
// installation is complete without the marker.
func (r *runner) fetchVersionMarker(ctx context.Context) {
	response, err := r.get(ctx, r.cfg.CommitsURL)
	if response != nil {
		defer func() {
			_ = response.Body.Close()
		}()
	}

	if err != nil {
		logger.DebugKV(ctx, "Skipping version marker", "error", err)

		return
	}

	var info commitInfo
	if err = json.NewDecoder(response.Body).Decode(&info); err != nil {
		logger.DebugKV(ctx, "Skipping version marker", "error", err)

		return
	}

	sha := info.SHA
	if len(sha) > shortSHALength {
		sha = sha[:shortSHALength]
	}

	if sha == "" {
		logger.Debug(ctx, "Commits endpoint answered without a sha")

		return
	}

	if err = r.executor.PlaceFile(ctx, r.plan.VersionFilePath(),
		strings.NewReader(sha+"\n"), artifactFileMode); err != nil {
		logger.DebugKV(ctx, "Skipping version marker", "error", err)

		return
	}

	r.version = sha
	r.printer.Successf("version %s", sha)
}

// get issues one GET against the endpoint within the run's timeout budget.
func (r *runner) get(ctx context.Context, endpoint string) (*http.Response, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, err
	}

	request.Header.Set("User-Agent", version.UserAgent())

	response, err := r.client.Do(request)
	if err != nil {
		return response, err
	}

	if response.StatusCode != http.StatusOK {
		return response, fmt.Errorf("%s, %s: %w", endpoint, response.Status, errBadHTTPStatus)
	}

	return response, nil
}
