package in

import (
	"wikitrail/internal/modules/game/dto"
	gamein "wikitrail/internal/modules/game/port/in"
)

type TUIHandler struct {
	usecase gamein.Usecase
}

func NewTUIHandler(usecase gamein.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Start(input dto.StartInput) (dto.ViewOutput, error) {
	return h.usecase.Start(input)
}

func (h TUIHandler) Move(direction string) (dto.ViewOutput, error) {
	return h.usecase.Apply(direction)
}

func (h TUIHandler) Current() (dto.ViewOutput, error) {
	return h.usecase.Current()
}
