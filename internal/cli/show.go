package cli

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/chmouel/cgc/internal/config"
	"github.com/chmouel/cgc/internal/ignore"
	"github.com/chmouel/cgc/internal/status"
	"github.com/chmouel/cgc/internal/utils"
	devicons "github.com/epilande/go-devicons"
)

type iconFileInfo struct {
	name  string
	isDir bool
}

func (i iconFileInfo) Name() string { return i.name }

func (i iconFileInfo) Size() int64 { return 0 }

func (i iconFileInfo) Mode() os.FileMode {
	if i.isDir {
		return os.ModeDir | 0o755
	}
	return 0
}

func (i iconFileInfo) ModTime() time.Time { return time.Time{} }

func (i iconFileInfo) IsDir() bool { return i.isDir }

func (i iconFileInfo) Sys() any { return nil }

func deviconForPath(p string) string {
	if p == "" {
		return ""
	}
	isDir := strings.HasSuffix(p, "/")
	name := path.Base(strings.TrimSuffix(p, "/"))
	return devicons.IconForInfo(iconFileInfo{name: name, isDir: isDir}).Icon
}

func (o *Output) categoryStyle(c status.Category) lipgloss.Style {
	switch c {
	case status.Deleted:
		return o.Styles.Error
	case status.Added, status.Untracked:
		return o.Styles.Success
	case status.Updated:
		return o.Styles.Warn
	case status.IgnoredMarker:
		return o.Styles.Muted
	default:
		return o.Styles.Info
	}
}

// ShowStatus prints every porcelain entry with its category, marking the
// paths the scaffold would leave out.
func ShowStatus(ctx context.Context, gitSvc gitService, cfg *config.AppConfig, root string, icons bool, out *Output) error {
	raw, err := gitSvc.Status(ctx)
	if err != nil {
		return err
	}
	entries := status.ParseEntries(raw)
	if len(entries) == 0 {
		out.Printf("Nothing to commit.")
		return nil
	}

	exclusions, err := ignore.LoadAll(
		utils.ResolveIn(root, cfg.GitignoreFile),
		utils.ResolveIn(root, cfg.CommitignoreFile),
	)
	if err != nil {
		return err
	}
	// same exclusions as the scaffold builder
	if name := strings.TrimSpace(cfg.CommitMessageFile); name != "" {
		exclusions.Add(name)
	}

	for _, e := range entries {
		cat := e.Category()
		line := fmt.Sprintf("%s %-9s %s", e.Code(), cat, e.Path)
		if icons {
			line = fmt.Sprintf("%s %-9s %s %s", e.Code(), cat, deviconForPath(e.Path), e.Path)
		}
		if cat != status.Deleted && ignore.IsExcluded(e.Path, exclusions) {
			out.Printf("%s", out.Styles.Muted.Render(line+"  (excluded)"))
			continue
		}
		out.Printf("%s", out.categoryStyle(cat).Render(line))
	}
	return nil
}
