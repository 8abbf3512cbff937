package themectl

import (
	"context"

	"github.com/Dhanuzh/dbexplorer/internal/theme"
)

// Consumer is what the rest of the application sees of the theme engine:
// the current selection and two ways to ask for a different one.
type Consumer interface {
	Selection() (Selection, error)
	ThemeKey() (string, error)
	Mode() (theme.Mode, error)
	Colors() (theme.Palette, error)
	SetThemeKey(ctx context.Context, key string) error
	SetMode(ctx context.Context, mode theme.Mode) error
}

var _ Consumer = (*Controller)(nil)

// ThemeKey returns the selected theme key.
func (c *Controller) ThemeKey() (string, error) {
	sel, err := c.Selection()
	if err != nil {
		return "", err
	}
	return sel.ThemeKey, nil
}

// Mode returns the selected mode.
func (c *Controller) Mode() (theme.Mode, error) {
	sel, err := c.Selection()
	if err != nil {
		return "", err
	}
	return sel.Mode, nil
}

// Colors returns the palette of the selected theme.
func (c *Controller) Colors() (theme.Palette, error) {
	sel, err := c.Selection()
	if err != nil {
		return theme.Palette{}, err
	}
	return c.registry.Resolve(sel.ThemeKey).Colors, nil
}

// SetThemeKey is SetTheme under the consumer's name.
func (c *Controller) SetThemeKey(ctx context.Context, key string) error {
	return c.SetTheme(ctx, key)
}

type consumerKey struct{}

// WithConsumer returns a context carrying c.
func WithConsumer(ctx context.Context, c Consumer) context.Context {
	return context.WithValue(ctx, consumerKey{}, c)
}

// FromContext returns the consumer stored by WithConsumer, or
// ErrNotInitialized when there is none.
func FromContext(ctx context.Context) (Consumer, error) {
	c, ok := ctx.Value(consumerKey{}).(Consumer)
	if !ok || c == nil {
		return nil, ErrNotInitialized
	}
	return c, nil
}
