package usecase

import (
	"context"
	"math"

	"quill/internal/modules/tracker/domain"
	"quill/internal/modules/tracker/dto"
	trackerin "quill/internal/modules/tracker/port/in"
	"quill/internal/modules/tracker/service"
)

type Interactor struct {
	svc *service.TrackerService
}

func NewInteractor(svc *service.TrackerService) trackerin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.StatusOutput, error) {
	return wrap(i.svc.Start(ctx, input.Files))
}

func (i *Interactor) Pause(ctx context.Context) (dto.StatusOutput, error) {
	return wrap(i.svc.Pause(ctx))
}

func (i *Interactor) Resume(ctx context.Context) (dto.StatusOutput, error) {
	return wrap(i.svc.Resume(ctx))
}

func (i *Interactor) Complete(ctx context.Context) (dto.StatusOutput, error) {
	return wrap(i.svc.Complete(ctx))
}

func (i *Interactor) Skip(ctx context.Context) (dto.StatusOutput, error) {
	return wrap(i.svc.Skip(ctx))
}

func (i *Interactor) Poll(ctx context.Context) (dto.StatusOutput, error) {
	return wrap(i.svc.Poll(ctx))
}

func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	return wrap(i.svc.Status(ctx))
}

func (i *Interactor) Recover(ctx context.Context) (dto.StatusOutput, error) {
	return wrap(i.svc.Recover(ctx))
}

func (i *Interactor) Shutdown() {
	i.svc.Shutdown()
}

func wrap(snap domain.Snapshot, err error) (dto.StatusOutput, error) {
	if err != nil {
		return dto.StatusOutput{State: string(snap.State)}, err
	}
	return dto.StatusOutput{
		State:         string(snap.State),
		SessionID:     snap.SessionID,
		StartedAt:     snap.StartedAt,
		Count:         snap.Count,
		CountUnit:     string(snap.CountUnit),
		TargetUnit:    string(snap.Target.Unit),
		TargetValue:   snap.Target.Value,
		Percent:       math.Min(100, math.Round(snap.Progress*1000)/10),
		ActiveMinutes: int(snap.ActiveElapsed.Minutes()),
		Files:         snap.Files,
	}, nil
}
