package dictionary

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	repoOwner = "scriptin"
	repoName  = "jmdict-simplified"
)

// Downloader fetches the English common JMdict-simplified release.
type Downloader struct {
	Client *http.Client
	// ReleaseURL is the GitHub "latest release" API endpoint.
	ReleaseURL string
	Logger     *slog.Logger
}

// NewDownloader returns a Downloader for the upstream GitHub release.
func NewDownloader(logger *slog.Logger) *Downloader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Downloader{
		Client:     &http.Client{Timeout: 5 * time.Minute},
		ReleaseURL: fmt.Sprintf("https://api.github.com/repos/%s/%s/releases/latest", repoOwner, repoName),
		Logger:     logger,
	}
}

// EnsureDictionary downloads the dictionary to path unless a file is already
// there. It reports whether a download happened.
func (d *Downloader) EnsureDictionary(ctx context.Context, path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}

	d.Logger.Info("dictionary not found, downloading", "path", path)
	downloadURL, err := d.latestReleaseAssetURL(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to find latest dictionary release: %w", err)
	}

	d.Logger.Info("downloading dictionary", "url", downloadURL)
	if err := d.downloadAndExtract(ctx, downloadURL, path); err != nil {
		return false, err
	}
	return true, nil
}

// EnsureDictionary downloads the dictionary with a default Downloader.
func EnsureDictionary(ctx context.Context, path string) error {
	_, err := NewDownloader(nil).EnsureDictionary(ctx, path)
	return err
}

func (d *Downloader) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	// Required by the GitHub API.
	req.Header.Set("User-Agent", "kanastudy-cli")
	resp, err := d.Client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%s returned status: %s", url, resp.Status)
	}
	return resp, nil
}

func (d *Downloader) latestReleaseAssetURL(ctx context.Context) (string, error) {
	resp, err := d.get(ctx, d.ReleaseURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var release struct {
		Assets []struct {
			Name               string `json:"name"`
			BrowserDownloadURL string `json:"browser_download_url"`
		} `json:"assets"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	// Pattern: jmdict-eng-common-*.json.tgz
	for _, asset := range release.Assets {
		if strings.Contains(asset.Name, "jmdict-eng-common") && (strings.HasSuffix(asset.Name, ".json.tgz") || strings.HasSuffix(asset.Name, ".json.gz")) {
			return asset.BrowserDownloadURL, nil
		}
	}
	return "", fmt.Errorf("no suitable dictionary asset found in latest release")
}

// downloadAndExtract writes the first .json member of a .tgz archive to
// destPath through a temp file, so a failed download leaves nothing behind.
func (d *Downloader) downloadAndExtract(ctx context.Context, url, destPath string) error {
	resp, err := d.get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	gzReader, err := gzip.NewReader(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzReader.Close()

	tarReader := tar.NewReader(gzReader)
	for {
		header, err := tarReader.Next()
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("no json file found in downloaded archive")
		}
		if err != nil {
			return fmt.Errorf("error reading tar archive: %w", err)
		}
		if header.Typeflag == tar.TypeReg && strings.HasSuffix(header.Name, ".json") {
			return writeFileAtomic(destPath, tarReader)
		}
	}
}

func writeFileAtomic(path string, r io.Reader) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".jmdict-*.json")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write to file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
