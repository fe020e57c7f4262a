package recorder

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/specialistvlad/k2700go/internal/ctxlog"
)

// uploadClient is shared across uploads to reuse connections.
var uploadClient = &http.Client{Timeout: 60 * time.Second}

// Upload pushes a finished readings file to a pre-signed PUT URL.
func Upload(ctx context.Context, path string, url string) error {
	logger := ctxlog.FromContext(ctx).With("path", path)

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open readings file %s: %w", path, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat readings file %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, file)
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", "text/csv")
	req.ContentLength = stat.Size()

	logger.Info("Uploading readings file", "size", stat.Size())

	resp, err := uploadClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upload failed with status: %s", resp.Status)
	}

	logger.Info("Successfully uploaded readings file", "status", resp.Status)
	return nil
}
