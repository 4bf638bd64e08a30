package event

import (
	"github.com/oomph-ac/grip/physics"
	"github.com/oomph-ac/grip/world"
)

type Stabbed struct {
	Stabber   world.Handle    `json:"stabber"`
	Stabbable world.Handle    `json:"stabbable"`
	Contact   physics.Contact `json:"contact"`
}

func (*Stabbed) ID() string {
	return IDStabbed
}

type Unstabbed struct {
	Stabber   world.Handle `json:"stabber"`
	Stabbable world.Handle `json:"stabbable"`
}

func (*Unstabbed) ID() string {
	return IDUnstabbed
}

type FullyStabbed struct {
	Stabber   world.Handle `json:"stabber"`
	Stabbable world.Handle `json:"stabbable"`
}

func (*FullyStabbed) ID() string {
	return IDFullyStabbed
}
