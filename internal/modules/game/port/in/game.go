package in

import "wikitrail/internal/modules/game/dto"

// Usecase drives one game at a time. Starting a game replaces the previous one.
type Usecase interface {
	Start(input dto.StartInput) (dto.ViewOutput, error)
	Apply(direction string) (dto.ViewOutput, error)
	Current() (dto.ViewOutput, error)
}
