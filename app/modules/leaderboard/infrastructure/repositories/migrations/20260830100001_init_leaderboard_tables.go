package leaderboardmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	leaderboarddb "github.com/jbcre8iv/MotoSense-sub001/app/modules/leaderboard/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating leaderboard tables...")

		if _, err := db.NewCreateTable().Model((*leaderboarddb.User)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*leaderboarddb.GroupMembership)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewCreateIndex().
			Model((*leaderboarddb.User)(nil)).
			Index("idx_users_region").
			Column("region").
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Leaderboard tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping leaderboard tables...")

		for _, model := range []any{
			(*leaderboarddb.GroupMembership)(nil),
			(*leaderboarddb.User)(nil),
		} {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return err
			}
		}

		fmt.Println("Leaderboard tables dropped successfully!")
		return nil
	})
}
