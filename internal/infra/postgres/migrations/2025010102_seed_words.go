package migrations

import (
	"context"

	"anagram-quiz-service/internal/domain"
	"anagram-quiz-service/internal/words"
	"github.com/uptrace/bun"
)

type wordRow struct {
	bun.BaseModel `bun:"table:words"`

	Tier     string `bun:"tier,pk"`
	Position int    `bun:"position,pk"`
	Word     string `bun:"word,notnull"`
}

// seedRows turns the embedded catalog into table rows, one position sequence per tier.
func seedRows(ctx context.Context) ([]wordRow, error) {
	loader := words.Embedded()
	var rows []wordRow
	for _, tier := range domain.LevelTiers {
		list, err := loader.LoadWords(ctx, tier)
		if err != nil {
			return nil, err
		}
		for i, w := range list {
			rows = append(rows, wordRow{Tier: string(tier), Position: i, Word: w})
		}
	}
	return rows, nil
}

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			rows, err := seedRows(ctx)
			if err != nil {
				return err
			}
			_, err = db.NewInsert().Model(&rows).On("CONFLICT (tier, position) DO NOTHING").Exec(ctx)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.NewDelete().Model((*wordRow)(nil)).Where("TRUE").Exec(ctx)
			return err
		},
	)
}
