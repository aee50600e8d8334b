package ports

// ListSource reads the full text of a card list from a path.
type ListSource interface {
	ReadList(path string) (string, error)
}
