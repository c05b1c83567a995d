package types

type Variable struct {
	Name  string
	Value string
}
