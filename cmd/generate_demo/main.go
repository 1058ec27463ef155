// Command generate_demo writes a raw survey export with sample consultations.
// Usage: go run ./cmd/generate_demo [-out demo/asthma.xlsx] [-rows 120]
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/qawash/internal/entities"
)

const defaultDemoPath = "./demo/asthma.xlsx"

var (
	doctors = []string{
		"李明 协和医院 主任医师",
		"王芳 人民医院 副主任医师",
		"张伟 中山医院 主治医师",
		"陈静 华山医院",
		"刘洋",
	}
	questions = []string{
		"夜间咳嗽加重",
		"运动后气喘",
		"胸闷持续一周",
		"季节性过敏引起呼吸困难",
		"孩子反复喘息",
	}
)

func main() {
	out := flag.String("out", defaultDemoPath, "path of the generated export (.xlsx or .db)")
	rows := flag.Int("rows", 120, "number of consultations to generate")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	records := generate(rng, *rows)

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	var err error
	if strings.HasSuffix(*out, ".db") {
		err = writeSQLite(*out, records)
	} else {
		err = writeXLSX(*out, records)
	}
	if err != nil {
		log.Fatalf("Failed to write demo export: %v", err)
	}
	log.Printf("Written %d consultations to %s", len(records), *out)
}

// generate builds raw rows. Some carry an image reference or lab results and
// some miss an answer, so every exclusion rule has something to remove.
func generate(rng *rand.Rand, n int) [][]string {
	records := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		q := questions[rng.Intn(len(questions))]
		row := []string{
			fmt.Sprintf("%s（%d）", q, i+1),
			fmt.Sprintf("健康咨询描述：\n患者%d岁，%s。", 3+rng.Intn(70), q),
		}
		for slot := 0; slot < entities.DoctorSlots; slot++ {
			row = append(row,
				doctors[rng.Intn(len(doctors))],
				"  三甲医院 从业十年 ",
				"病情分析：考虑哮喘可能。\t指导意见：规律使用吸入剂。",
			)
		}
		switch {
		case i%17 == 5:
			row[1] += "见检查结果图1"
		case i%23 == 7:
			row[len(row)-1] = ""
		}
		records = append(records, row)
	}
	return records
}

func header() []string {
	h := make([]string, len(entities.RawColumns))
	for i := range h {
		h[i] = fmt.Sprintf("Unnamed: %d", i)
	}
	return h
}

func writeXLSX(path string, records [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	all := append([][]string{header()}, records...)
	for i, r := range all {
		values := make([]any, len(r))
		for j, v := range r {
			values[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow("Sheet1", cell, &values); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

func writeSQLite(path string, records [][]string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	cols := make([]string, len(entities.RawColumns))
	marks := make([]string, len(entities.RawColumns))
	for i, c := range entities.RawColumns {
		cols[i] = c + " TEXT"
		marks[i] = "?"
	}
	if err := db.Exec("CREATE TABLE records (" + strings.Join(cols, ", ") + ")").Error; err != nil {
		return err
	}

	insert := "INSERT INTO records VALUES (" + strings.Join(marks, ", ") + ")"
	return db.Transaction(func(tx *gorm.DB) error {
		for _, r := range records {
			args := make([]any, len(r))
			for i, v := range r {
				if v == "" {
					args[i] = nil
				} else {
					args[i] = v
				}
			}
			if err := tx.Exec(insert, args...).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
