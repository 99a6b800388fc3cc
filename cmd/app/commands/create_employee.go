package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	directoryDomain "github.com/allisson/credvault/internal/directory/domain"
	directoryUseCase "github.com/allisson/credvault/internal/directory/usecase"
)

// RunCreateEmployee creates an employee inside an organization. Outputs the
// employee ID and email in either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateEmployee(
	ctx context.Context,
	useCase directoryUseCase.DirectoryUseCase,
	logger *slog.Logger,
	writer io.Writer,
	organizationID string,
	name string,
	email string,
	password string,
	format string,
) error {
	orgID, err := uuid.Parse(organizationID)
	if err != nil {
		return fmt.Errorf("invalid organization ID: %w", err)
	}

	logger.Info("creating new employee",
		slog.String("organization_id", orgID.String()),
		slog.String("name", name),
	)

	employee, err := useCase.CreateEmployee(ctx, directoryUseCase.CreateEmployeeInput{
		OrganizationID: orgID,
		Name:           name,
		Email:          email,
		Password:       password,
	})
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}

	if format == "json" {
		outputEmployeeJSON(employee, writer)
	} else {
		outputEmployeeText(employee, writer)
	}

	logger.Info("employee created successfully",
		slog.String("employee_id", employee.ID.String()),
		slog.String("name", employee.Name),
	)

	return nil
}

// outputEmployeeText outputs the result in human-readable text format.
func outputEmployeeText(employee *directoryDomain.Employee, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nEmployee created successfully!")
	_, _ = fmt.Fprintf(writer, "Employee ID: %s\n", employee.ID.String())
	_, _ = fmt.Fprintf(writer, "Organization ID: %s\n", employee.OrganizationID.String())
	_, _ = fmt.Fprintf(writer, "Name: %s\n", employee.Name)
	_, _ = fmt.Fprintf(writer, "Email: %s\n", employee.Email)
}

// outputEmployeeJSON outputs the result in JSON format for machine consumption.
func outputEmployeeJSON(employee *directoryDomain.Employee, writer io.Writer) {
	result := map[string]string{
		"employee_id":     employee.ID.String(),
		"organization_id": employee.OrganizationID.String(),
		"name":            employee.Name,
		"email":           employee.Email,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
