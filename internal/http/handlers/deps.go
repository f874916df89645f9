package handlers

import (
	"lumina/internal/assist"
	"lumina/internal/state"
)

type Deps struct {
	ProductHandler      *ProductHandler
	CartHandler         *CartHandler
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	OrderHandler        *OrderHandler
	NotificationHandler *NotificationHandler
	AssistHandler       *AssistHandler
}

func NewDeps(st *state.Store, ai *assist.Client) *Deps {
	return &Deps{
		ProductHandler:      &ProductHandler{State: st, Assist: ai},
		CartHandler:         &CartHandler{State: st},
		AuthHandler:         &AuthHandler{State: st},
		UserHandler:         &UserHandler{State: st},
		OrderHandler:        &OrderHandler{State: st},
		NotificationHandler: &NotificationHandler{State: st},
		AssistHandler:       &AssistHandler{State: st, Assist: ai},
	}
}
