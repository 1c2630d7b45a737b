package application

import "github.com/bnema/plza-save-editor/internal/domain"

type ModifyCommand struct {
	Ref     domain.SessionRef
	Changes domain.ChangeSet
}

type ApplyCommand struct {
	Blob    []byte
	Changes domain.ChangeSet
}
