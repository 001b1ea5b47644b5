package client

import (
	"github.com/google/uuid"

	"github.com/hvaldez/gestorpro/internal/client"
)

type clientResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	InitialDebt int64     `json:"initial_debt"`
	Debt        int64     `json:"debt"`
}

func toResponse(c client.Client) clientResponse {
	return clientResponse{
		ID:          c.ID,
		Name:        c.Name,
		InitialDebt: c.InitialDebt,
		Debt:        c.Debt,
	}
}

func toResponseList(clients []client.Client) []clientResponse {
	resp := make([]clientResponse, len(clients))
	for i, c := range clients {
		resp[i] = toResponse(c)
	}

	return resp
}
