package usecase

import (
	"context"

	"quill/internal/modules/prompt/dto"
	promptin "quill/internal/modules/prompt/port/in"
	"quill/internal/modules/prompt/service"
)

type Interactor struct {
	svc *service.PromptService
}

func NewInteractor(svc *service.PromptService) promptin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Prompts(ctx context.Context) (dto.PromptsOutput, error) {
	prompts, source, err := i.svc.Prompts(ctx)
	if err != nil {
		return dto.PromptsOutput{}, err
	}
	return dto.PromptsOutput{Prompts: prompts, Source: string(source)}, nil
}

func (i *Interactor) Random(ctx context.Context) (string, error) {
	return i.svc.Random(ctx)
}

func (i *Interactor) Refresh(ctx context.Context) (dto.RefreshOutput, error) {
	feed, err := i.svc.Refresh(ctx)
	if err != nil {
		return dto.RefreshOutput{}, err
	}
	return dto.RefreshOutput{Count: len(feed.Prompts), FetchedAt: feed.FetchedAt}, nil
}
