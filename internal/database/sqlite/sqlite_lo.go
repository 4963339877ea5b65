package sqlite

import "github.com/connorkuehl/pointsbot/internal/env"

func pathFromEnv(f func(key string) (val string)) Path {
	return Path(env.GetOr("POINTS_SQLITE_DB_PATH", "", f))
}
