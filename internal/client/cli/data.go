package cli

import (
	"context"

	"github.com/fusion-condo/fusion/internal/filex"
	"github.com/fusion-condo/fusion/internal/media"
)

// Get lists records of a table: get <table> [name=value ...].
func (a *App) Get(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return usageError("get <table> [name=value ...]")
	}
	params, err := ParseParams(args[1:])
	if err != nil {
		return err
	}

	raw, err := a.apiClient.Get(ctx, args[0], params)
	if err != nil {
		return err
	}
	a.printJSON(raw)
	return nil
}

// Create reads a JSON body and posts it: create <table>.
func (a *App) Create(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("create <table>")
	}
	body, err := a.askJSON("Enter JSON body")
	if err != nil {
		return err
	}

	raw, err := a.apiClient.Create(ctx, args[0], body)
	if err != nil {
		return err
	}
	a.printJSON(raw)
	return nil
}

// Update reads a JSON body and puts it: update <table> <id>.
func (a *App) Update(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("update <table> <id>")
	}
	body, err := a.askJSON("Enter JSON body")
	if err != nil {
		return err
	}

	raw, err := a.apiClient.Update(ctx, args[0], args[1], body)
	if err != nil {
		return err
	}
	a.printJSON(raw)
	return nil
}

// Delete removes a record: delete <table> <id>.
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("delete <table> <id>")
	}

	raw, err := a.apiClient.Delete(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	a.printJSON(raw)
	return nil
}

// Upload sends a local file: upload <path>.
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("upload <path>")
	}

	f, name, err := filex.OpenRegular(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := a.apiClient.UploadFile(ctx, name, f)
	if err != nil {
		return err
	}
	a.printf("Uploaded %s: %s (%s)\n", name, res.URL, media.Classify(res.URL))
	return nil
}
