package database

import (
	"context"

	"github.com/fieldsync/fieldsync/model"
)

func (d Datasource) InsertWorkDay(ctx context.Context, workDay *model.WorkDay) model.Result {
	return d.insert(ctx, "work day", workDay, `
		INSERT INTO work_days (id_work_day, id_route, id_route_day, start_date, finish_date, start_petty_cash, final_petty_cash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, workDay.IDWorkDay, workDay.IDRoute, workDay.IDRouteDay, workDay.StartDate, workDay.FinishDate, workDay.StartPettyCash, workDay.FinalPettyCash)
}

func (d Datasource) UpdateWorkDay(ctx context.Context, workDay *model.WorkDay) model.Result {
	return d.update(ctx, "work day", workDay.IDWorkDay, workDay, `
		UPDATE work_days
		SET id_route = $2, id_route_day = $3, start_date = $4, finish_date = $5, start_petty_cash = $6, final_petty_cash = $7
		WHERE id_work_day = $1
	`, workDay.IDWorkDay, workDay.IDRoute, workDay.IDRouteDay, workDay.StartDate, workDay.FinishDate, workDay.StartPettyCash, workDay.FinalPettyCash)
}
