// Command prevqnt forecasts the remaining months of the target year from a
// workbook-resident monthly quantity series and writes the rounded forecasts
// back into fixed cells of the same workbook.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"prevqnt/internal/app"
	"prevqnt/internal/config"
	pqerrors "prevqnt/internal/errors"
	"prevqnt/internal/infrastructure"
)

func main() {
	file := flag.String("file", "", "workbook path (overrides config)")
	sheet := flag.String("sheet", "", "data sheet name (overrides config)")
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("configuração inválida", "error", err)
		fmt.Fprintf(os.Stderr, "Erro na configuração: %v\n", err)
		os.Exit(1)
	}
	if *file != "" {
		cfg.Workbook.Path = *file
	}
	if *sheet != "" {
		cfg.Workbook.DataSheet = *sheet
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("falha ao inicializar o logger, usando o padrão", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	logger.Info("iniciando a previsão",
		slog.String("workbook", cfg.Workbook.Path),
		slog.String("data_sheet", cfg.Workbook.DataSheet),
		slog.String("target_sheet", cfg.Workbook.TargetSheet))

	res, err := app.Run(cfg, logger)
	if err != nil {
		logger.Error("a execução falhou",
			slog.String("kind", string(pqerrors.KindOf(err))),
			slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		if hint := pqerrors.HintOf(err); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
		os.Exit(1)
	}

	if res.NoOp {
		fmt.Printf("Os dados já estão completos até o mês %d de %d.\n",
			cfg.Forecast.FinalMonth, cfg.Forecast.TargetYear)
		return
	}

	fmt.Printf("Coluna de datas detectada: '%s' (%d observações, última em %s)\n",
		res.DateColumn, res.Observations, res.LastObserved.Format("01/2006"))
	for _, p := range res.Points {
		fmt.Printf("Previsão para %s: %d\n", p.Date.Format("01/2006"), p.Rounded())
	}
	for _, w := range res.Writes {
		fmt.Printf("Valor '%d' (para %s) salvo na célula %s\n", w.Value, w.Month, w.Cell)
	}
	fmt.Printf("\nSucesso! Todas as %d previsões foram salvas em '%s'.\n",
		len(res.Writes), cfg.Workbook.Path)
}
