package domain

import (
	"fmt"
	"strings"

	apperrors "quill/internal/platform/errors"
)

const (
	DefaultGraceDays    = 1
	DefaultWeeklyTarget = 3
	MaxGraceDays        = 7
)

type Settings struct {
	StreakMode   Mode   `json:"streak_mode"`
	GraceDays    int    `json:"grace_days"`
	WeeklyTarget int    `json:"weekly_target"`
	Unit         Unit   `json:"unit"`
	NotesFolder  string `json:"notes_folder"`
	VaultName    string `json:"vault_name"`
}

func DefaultSettings(vaultName, notesFolder string) Settings {
	return Settings{
		StreakMode:   ModeDaily,
		GraceDays:    DefaultGraceDays,
		WeeklyTarget: DefaultWeeklyTarget,
		Unit:         UnitWords,
		NotesFolder:  notesFolder,
		VaultName:    vaultName,
	}
}

func (s Settings) Validate() error {
	if s.StreakMode != ModeDaily && s.StreakMode != ModeWeekly {
		return fmt.Errorf("%w: streak mode must be daily or weekly", apperrors.ErrInvalidSettings)
	}
	if s.GraceDays < 0 || s.GraceDays > MaxGraceDays {
		return fmt.Errorf("%w: grace days must be within 0..%d", apperrors.ErrInvalidSettings, MaxGraceDays)
	}
	if s.WeeklyTarget < 1 || s.WeeklyTarget > 7 {
		return fmt.Errorf("%w: weekly target must be within 1..7", apperrors.ErrInvalidSettings)
	}
	if s.Unit != UnitWords && s.Unit != UnitCharacters {
		return fmt.Errorf("%w: unit must be words or characters", apperrors.ErrInvalidSettings)
	}
	if strings.TrimSpace(s.NotesFolder) == "" {
		return fmt.Errorf("%w: notes folder is required", apperrors.ErrInvalidSettings)
	}
	if strings.Contains(s.NotesFolder, "..") {
		return fmt.Errorf("%w: notes folder must stay inside the vault", apperrors.ErrInvalidSettings)
	}
	if strings.TrimSpace(s.VaultName) == "" {
		return fmt.Errorf("%w: vault name is required", apperrors.ErrInvalidSettings)
	}
	return nil
}
