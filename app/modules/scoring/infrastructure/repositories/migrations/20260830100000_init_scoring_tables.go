package scoringmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	scoringdb "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating scoring tables...")

		if _, err := db.NewCreateTable().Model((*scoringdb.Prediction)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*scoringdb.RaceResult)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*scoringdb.PredictionScore)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*scoringdb.StreakState)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewCreateIndex().
			Model((*scoringdb.Prediction)(nil)).
			Index("idx_predictions_race_user").
			Column("race_id", "user_id").
			Unique().
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateIndex().
			Model((*scoringdb.PredictionScore)(nil)).
			Index("idx_prediction_scores_user").
			Column("user_id").
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Scoring tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping scoring tables...")

		for _, model := range []any{
			(*scoringdb.StreakState)(nil),
			(*scoringdb.PredictionScore)(nil),
			(*scoringdb.RaceResult)(nil),
			(*scoringdb.Prediction)(nil),
		} {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return err
			}
		}

		fmt.Println("Scoring tables dropped successfully!")
		return nil
	})
}
