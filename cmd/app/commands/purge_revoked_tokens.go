package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	authUseCase "github.com/Felobateer/ECommerce-API/internal/auth/usecase"
)

type purgeResult struct {
	Count  int64 `json:"count"`
	DryRun bool  `json:"dry_run"`
}

// RunPurgeRevokedTokens deletes revocation records whose tokens have expired.
// With dryRun it only reports how many would be deleted.
func RunPurgeRevokedTokens(
	ctx context.Context,
	sessions authUseCase.SessionUseCase,
	logger *slog.Logger,
	writer io.Writer,
	dryRun bool,
	format string,
) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format: %s (valid options: text, json)", format)
	}

	logger.Info("purging revoked tokens", slog.Bool("dry_run", dryRun))

	var (
		count int64
		err   error
	)
	if dryRun {
		count, err = sessions.CountExpired(ctx)
	} else {
		count, err = sessions.PurgeExpired(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to purge revoked tokens: %w", err)
	}

	result := purgeResult{Count: count, DryRun: dryRun}
	if format == "json" {
		if err := writePurgeJSON(writer, result); err != nil {
			return err
		}
	} else {
		writePurgeText(writer, result)
	}

	logger.Info("purge completed", slog.Int64("count", count), slog.Bool("dry_run", dryRun))
	return nil
}

func writePurgeText(w io.Writer, result purgeResult) {
	if result.DryRun {
		_, _ = fmt.Fprintf(w, "Dry-run mode: would delete %d expired revocation record(s)\n", result.Count)
		return
	}
	_, _ = fmt.Fprintf(w, "Deleted %d expired revocation record(s)\n", result.Count)
}

func writePurgeJSON(w io.Writer, result purgeResult) error {
	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonBytes))
	return err
}
