package entity

type City struct {
	BaseSimple
	Name string `db:"name"`
}
