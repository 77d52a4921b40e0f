package cli

import (
	"context"

	"github.com/fusion-condo/fusion/internal/format"
	"github.com/fusion-condo/fusion/internal/media"
)

// Cep looks up a postal code: cep <code>.
func (a *App) Cep(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("cep <code>")
	}

	addr, err := a.addresses.Lookup(ctx, args[0])
	if err != nil {
		return err
	}
	a.printf("CEP:          %s\n", format.CEP(addr.CEP))
	a.printf("Street:       %s\n", addr.Street)
	a.printf("Neighborhood: %s\n", addr.Neighborhood)
	if addr.City != "" {
		a.printf("City:         %s/%s\n", addr.City, addr.State)
	}
	return nil
}

// Media tells how an attachment URL would be shown: media <url>.
func (a *App) Media(_ context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("media <url>")
	}
	a.println(media.Classify(args[0]))
	return nil
}
