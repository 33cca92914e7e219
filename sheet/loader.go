package sheet

import (
	"context"
	"net/http"
	"time"

	"github.com/andareed/siftly-bhs/logging"
)

// Source produces a decoded Dataset. The viewer loads through this so the
// remote endpoint and a local file are interchangeable.
type Source interface {
	Load(ctx context.Context) (*Dataset, error)
	// Name is a short label for the footer.
	Name() string
}

// HTTPSource fetches the workbook from the file endpoint.
type HTTPSource struct {
	URL     string
	Client  *http.Client
	Timeout time.Duration
	Options DecodeOptions
}

func (s *HTTPSource) Name() string { return s.URL }

func (s *HTTPSource) Load(ctx context.Context) (*Dataset, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	start := time.Now()
	data, err := Fetch(ctx, s.Client, s.URL)
	if err != nil {
		logging.Errorf("loader: fetch %s failed: %v", s.URL, err)
		return nil, err
	}
	logging.Infof("loader: fetched %d bytes from %s in %s", len(data), s.URL, time.Since(start))

	ds, err := DecodeBytes(data, s.Options)
	if err != nil {
		logging.Errorf("loader: decode failed: %v", err)
		return nil, err
	}
	logging.Infof("loader: decoded %d columns, %d rows", len(ds.Headers), ds.Len())
	return ds, nil
}

// FileSource decodes a workbook from local disk.
type FileSource struct {
	Path    string
	Options DecodeOptions
}

func (s *FileSource) Name() string { return s.Path }

func (s *FileSource) Load(ctx context.Context) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ds, err := DecodeFile(s.Path, s.Options)
	if err != nil {
		logging.Errorf("loader: %v", err)
		return nil, err
	}
	logging.Infof("loader: decoded %s (%d columns, %d rows)", s.Path, len(ds.Headers), ds.Len())
	return ds, nil
}
