package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-config-i18n/internal/logging"
	"github.com/goliatone/go-config-i18n/pkg/interfaces"
)

// ErrLangcodeRequired is returned when the installer has no default language.
var ErrLangcodeRequired = errors.New("users: default langcode is required")

// Installer seeds the default accounts.
type Installer struct {
	repo      Repository
	langcode  string
	adminName string
	logger    interfaces.Logger
	now       func() time.Time
}

// InstallerOption configures an Installer.
type InstallerOption func(*Installer)

// WithAdminName overrides the administrator placeholder name, mail and init.
func WithAdminName(name string) InstallerOption {
	return func(i *Installer) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			i.adminName = trimmed
		}
	}
}

// WithInstallerLogger sets the installer logger.
func WithInstallerLogger(logger interfaces.Logger) InstallerOption {
	return func(i *Installer) {
		i.logger = logging.Ensure(logger)
	}
}

// WithInstallerClock overrides the creation timestamp source.
func WithInstallerClock(now func() time.Time) InstallerOption {
	return func(i *Installer) {
		if now != nil {
			i.now = now
		}
	}
}

// NewInstaller builds an installer creating accounts in langcode.
func NewInstaller(repo Repository, langcode string, opts ...InstallerOption) *Installer {
	inst := &Installer{
		repo:      repo,
		langcode:  strings.ToLower(strings.TrimSpace(langcode)),
		adminName: PlaceholderAdmin,
		logger:    logging.NoOp(),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(inst)
		}
	}
	return inst
}

// DefaultUsers returns the anonymous and administrator records.
func (i *Installer) DefaultUsers() []User {
	return []User{
		{
			UID:      AnonymousUID,
			Name:     "",
			Mail:     "",
			Status:   StatusBlocked,
			Langcode: i.langcode,
		},
		{
			UID:               AdminUID,
			Name:              i.adminName,
			Mail:              i.adminName,
			Init:              i.adminName,
			Status:            StatusActive,
			Langcode:          i.langcode,
			PreferredLangcode: i.langcode,
		},
	}
}

// Install creates the default accounts that do not exist yet and returns
// the UIDs it created. Existing accounts are left untouched.
func (i *Installer) Install(ctx context.Context) ([]int64, error) {
	if i.langcode == "" {
		return nil, ErrLangcodeRequired
	}
	var created []int64
	for _, user := range i.DefaultUsers() {
		_, err := i.repo.GetByUID(ctx, user.UID)
		if err == nil {
			continue
		}
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return created, err
		}
		user.CreatedAt = i.now()
		if _, err := i.repo.Create(ctx, &user); err != nil {
			return created, err
		}
		created = append(created, user.UID)
		i.logger.Info("users.install.created", "uid", user.UID)
	}
	return created, nil
}
