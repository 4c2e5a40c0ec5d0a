package email

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DevSender writes mail to a local directory instead of delivering it.
type DevSender struct {
	dir string
}

// NewDevSender creates a development sender writing into dir.
func NewDevSender(dir string) *DevSender {
	return &DevSender{dir: dir}
}

func (d *DevSender) Send(ctx context.Context, params SendParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToSendEmail, err)
	}

	name := params.Tag
	if name == "" {
		name = params.Subject
	}
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, name)

	path := filepath.Join(d.dir, fmt.Sprintf("%s_%s.html", time.Now().Format("2006_01_02_150405"), name))
	if err := os.WriteFile(path, []byte(params.BodyHTML), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToSendEmail, err)
	}
	return nil
}
