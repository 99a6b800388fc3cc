package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	directoryDomain "github.com/allisson/credvault/internal/directory/domain"
	directoryUseCase "github.com/allisson/credvault/internal/directory/usecase"
)

// RunCreateOrganization registers a new organization. Outputs the organization
// ID and email in either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateOrganization(
	ctx context.Context,
	useCase directoryUseCase.DirectoryUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	email string,
	password string,
	format string,
) error {
	logger.Info("creating new organization", slog.String("name", name))

	org, err := useCase.RegisterOrganization(ctx, directoryUseCase.RegisterOrganizationInput{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("failed to create organization: %w", err)
	}

	if format == "json" {
		outputOrganizationJSON(org, writer)
	} else {
		outputOrganizationText(org, writer)
	}

	logger.Info("organization created successfully",
		slog.String("organization_id", org.ID.String()),
		slog.String("name", org.Name),
	)

	return nil
}

// outputOrganizationText outputs the result in human-readable text format.
func outputOrganizationText(org *directoryDomain.Organization, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nOrganization created successfully!")
	_, _ = fmt.Fprintf(writer, "Organization ID: %s\n", org.ID.String())
	_, _ = fmt.Fprintf(writer, "Name: %s\n", org.Name)
	_, _ = fmt.Fprintf(writer, "Email: %s\n", org.Email)
}

// outputOrganizationJSON outputs the result in JSON format for machine consumption.
func outputOrganizationJSON(org *directoryDomain.Organization, writer io.Writer) {
	result := map[string]string{
		"organization_id": org.ID.String(),
		"name":            org.Name,
		"email":           org.Email,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
