package report

import (
	"time"

	"github.com/bittarwork/altrohr-payroll/internal/domain/payroll"
)

type GenerateRequest struct {
	Category    string   `json:"category"`
	EmployeeIDs []string `json:"employeeIds,omitempty"`
	Department  string   `json:"department,omitempty"`
	All         bool     `json:"all,omitempty"`
	From        string   `json:"from"`
	To          string   `json:"to"`
}

type GenerateUserRequest struct {
	UserID string `json:"userId"`
	Month  string `json:"month"`
}

type Response struct {
	ID            string            `json:"id"`
	Category      string            `json:"category"`
	Params        Params            `json:"params"`
	GeneratedAt   string            `json:"generatedAt"`
	ContentHash   string            `json:"contentHash"`
	StatementRefs []string          `json:"statementRefs"`
	Summary       Summary           `json:"summary"`
	Warnings      []payroll.Warning `json:"warnings"`
}

func NewResponse(rep Report) Response {
	refs := rep.StatementRefs
	if refs == nil {
		refs = []string{}
	}
	warnings := rep.Warnings
	if warnings == nil {
		warnings = []payroll.Warning{}
	}
	return Response{
		ID:            rep.ID,
		Category:      string(rep.Category),
		Params:        rep.Params,
		GeneratedAt:   rep.GeneratedAt.UTC().Format(time.RFC3339),
		ContentHash:   rep.ContentHash,
		StatementRefs: refs,
		Summary:       rep.Summary,
		Warnings:      warnings,
	}
}
