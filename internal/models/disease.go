package models

type Disease struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Symptoms    []string `json:"symptoms"`
	Causes      []string `json:"causes"`
	Treatment   string   `json:"treatment"`
	Prevention  []string `json:"prevention"`
}
