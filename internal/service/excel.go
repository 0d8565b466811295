package service

import (
	"bytes"
	"fmt"

	"github.com/cleberrangel/total-reports-api/internal/model"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Relatório"

// XLSXContentType é o MIME de planilhas xlsx
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var summaryHeaders = []string{"Empresa", "De", "Até", "Status", "Total de ligações"}

// ExcelGenerator gera arquivos Excel
type ExcelGenerator struct{}

// NewExcelGenerator cria um novo gerador de Excel
func NewExcelGenerator() *ExcelGenerator {
	return &ExcelGenerator{}
}

// Summary gera uma planilha de uma linha com o resultado do relatório
func (g *ExcelGenerator) Summary(result *model.ReportResult) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Renomeia a sheet padrão
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("renomear sheet: %w", err)
	}

	if err := g.writeHeaders(f, summaryHeaders); err != nil {
		return nil, fmt.Errorf("escrever headers: %w", err)
	}

	row := []interface{}{
		result.Company,
		result.Period.From,
		result.Period.To,
		result.Status,
		result.TotalCalls,
	}
	if err := f.SetSheetRow(sheetName, "A2", &row); err != nil {
		return nil, fmt.Errorf("escrever dados: %w", err)
	}

	if err := g.autoFitColumns(f, len(summaryHeaders)); err != nil {
		return nil, fmt.Errorf("ajustar colunas: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("escrever buffer: %w", err)
	}

	return buf, nil
}

// writeHeaders escreve os cabeçalhos no Excel
func (g *ExcelGenerator) writeHeaders(f *excelize.File, headers []string) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Size:  11,
			Color: "FFFFFF",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return err
	}

	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, style); err != nil {
			return err
		}
	}

	return nil
}

// autoFitColumns ajusta a largura das colunas
func (g *ExcelGenerator) autoFitColumns(f *excelize.File, numCols int) error {
	for col := 1; col <= numCols; col++ {
		colName, _ := excelize.ColumnNumberToName(col)
		if err := f.SetColWidth(sheetName, colName, colName, 20); err != nil {
			return err
		}
	}
	return nil
}
