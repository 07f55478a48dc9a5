package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Sort     key.Binding
	Answered key.Binding
	NoAnswer key.Binding
	More     key.Binding
	Filter   key.Binding
	Export   key.Binding
	Open     key.Binding
	Reset    key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "ligne précédente"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "ligne suivante"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "colonne précédente"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "colonne suivante"),
		),
		Sort: key.NewBinding(
			key.WithKeys("enter", "s"),
			key.WithHelp("s", "trier"),
		),
		Answered: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "a pris l'appel"),
		),
		NoAnswer: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "n'a pas pris l'appel"),
		),
		More: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "afficher plus"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filtrer par pays"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "exporter"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "ouvrir un fichier"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "réinitialiser"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quitter"),
		),
	}
}
