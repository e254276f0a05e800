package sweep

import "fmt"

const (
	MinDimension = 5
	MaxDimension = 50
)

type Config struct {
	Rows       int
	Columns    int
	MineCount  int
	PlayerName string
}

// Validate enforces the configuration boundary: dimensions within
// [MinDimension, MaxDimension] and at least one mine while leaving at least
// one safe cell.
func (c Config) Validate() error {
	if c.Rows < MinDimension || c.Rows > MaxDimension {
		return fmt.Errorf(
			"%w: rows must be in [%d, %d], got %d",
			ErrInvalidConfiguration, MinDimension, MaxDimension, c.Rows,
		)
	}
	if c.Columns < MinDimension || c.Columns > MaxDimension {
		return fmt.Errorf(
			"%w: columns must be in [%d, %d], got %d",
			ErrInvalidConfiguration, MinDimension, MaxDimension, c.Columns,
		)
	}
	if c.MineCount < 1 {
		return fmt.Errorf(
			"%w: mine count must be positive, got %d",
			ErrInvalidConfiguration, c.MineCount,
		)
	}
	if c.MineCount >= c.Rows*c.Columns {
		return fmt.Errorf(
			"%w: %d mines leave no safe cell on a %dx%d grid",
			ErrInvalidConfiguration, c.MineCount, c.Rows, c.Columns,
		)
	}
	return nil
}

// Difficulty is the label scores are grouped and filtered by. The classic
// presets get their usual names, everything else is labeled by shape.
func (c Config) Difficulty() string {
	switch {
	case c.Rows == 9 && c.Columns == 9 && c.MineCount == 10:
		return "beginner"
	case c.Rows == 16 && c.Columns == 16 && c.MineCount == 40:
		return "intermediate"
	case c.Rows == 16 && c.Columns == 30 && c.MineCount == 99:
		return "expert"
	}
	return fmt.Sprintf("%dx%d/%d", c.Rows, c.Columns, c.MineCount)
}
