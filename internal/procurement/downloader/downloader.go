package downloader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/farxc/procurement-insights/internal/logger"
)

// PurchaseOrdersURL is the mock procurement service the raw orders come from.
var PurchaseOrdersURL = "https://procurement-sku-analysis-mock.onrender.com/purchase-orders"

type DownloadResult struct {
	Success    bool
	OutputPath string
	Bytes      int64
}

// Client fetches the raw purchase order document.
type Client struct {
	HTTP   *http.Client
	Logger *logger.Logger
}

func New(appLogger *logger.Logger) *Client {
	return &Client{
		HTTP:   &http.Client{Timeout: 60 * time.Second},
		Logger: appLogger,
	}
}

// FetchData downloads url into outputPath, creating parent directories. The
// file is only replaced once the whole body has been received.
func (c *Client) FetchData(ctx context.Context, url, outputPath string) (DownloadResult, error) {
	const component = "Downloader"

	c.Logger.Debug(component, "Starting download: url=%s path=%s", url, outputPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return DownloadResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Logger.Error(component, "HTTP request failed: url=%s error=%v", url, err)
		return DownloadResult{}, fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.Logger.Warn(component, "Non-OK HTTP response: url=%s status=%s statusCode=%d", url, resp.Status, resp.StatusCode)
		return DownloadResult{}, fmt.Errorf("request %s: unexpected status %s", url, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), os.ModePerm); err != nil {
		return DownloadResult{}, fmt.Errorf("failed to create directory for %s: %w", outputPath, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(outputPath), filepath.Base(outputPath)+".*.part")
	if err != nil {
		return DownloadResult{}, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	bytesWritten, err := io.Copy(tmp, resp.Body)
	if err != nil {
		tmp.Close()
		c.Logger.Error(component, "Failed to write data to file: path=%s error=%v", outputPath, err)
		return DownloadResult{}, fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	if err := tmp.Close(); err != nil {
		return DownloadResult{}, err
	}
	if err := os.Rename(tmp.Name(), outputPath); err != nil {
		return DownloadResult{}, fmt.Errorf("failed to move download into place: %w", err)
	}

	c.Logger.Info(component, "Download completed: path=%s size=%d bytes", outputPath, bytesWritten)
	return DownloadResult{Success: true, OutputPath: outputPath, Bytes: bytesWritten}, nil
}
