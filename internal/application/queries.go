package application

import "github.com/bnema/plza-save-editor/internal/domain"

type ParseResult struct {
	Ref     domain.SessionRef
	Summary domain.SaveSummary
}

type ModifyResult struct {
	DownloadRef domain.SessionRef
}
