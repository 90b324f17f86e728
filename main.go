/*
* Main GUI application file
* Copyright (C) 2025  Artem Stefankiv
*
* This program is free software: you can redistribute it and/or modify
* it under the terms of the GNU General Public License as published by
* the Free Software Foundation, either version 3 of the License, or
* (at your option) any later version.
*
* This program is distributed in the hope that it will be useful,
* but WITHOUT ANY WARRANTY; without even the implied warranty of
* MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
* GNU General Public License for more details.
*
* You should have received a copy of the GNU General Public License
* along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/mappu/miqt/qt"

	"github.com/Gilah-EnE/unite/analysis"
	"github.com/Gilah-EnE/unite/binning"
	"github.com/Gilah-EnE/unite/dataset"
	"github.com/Gilah-EnE/unite/kde"
	"github.com/Gilah-EnE/unite/parse"
)

func formatNats(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func formatCounts(counts []int) string {
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, "; ")
}

// pickCSV wires a button to a file dialog that fills target.
func pickCSV(widget *qt.QWidget, button *qt.QPushButton, target *qt.QLineEdit, caption string) {
	button.OnClicked(func() {
		fileDialog := qt.NewQFileDialog4(widget, caption)

		fileDialog.SetFileMode(qt.QFileDialog__ExistingFile)
		fileDialog.SetNameFilter("Файли CSV (*.csv);;Всі файли (*)")

		if fileDialog.Exec() == int(qt.QDialog__Accepted) {
			selectedFile := fileDialog.SelectedFiles()
			if len(selectedFile) > 0 {
				target.SetText(selectedFile[0])
			}
		}
	})
}

// checkInputFile reports a missing or directory path as a user facing message.
func checkInputFile(fileName string) string {
	stat, err := os.Stat(fileName)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Sprintf("Файл %s не знайдено. Перевірте правильність введення шляху та повторіть спробу.", fileName)
	case err != nil:
		return fmt.Sprintf("Не вдалося відкрити файл %s: %s", fileName, err)
	case stat.IsDir():
		return fmt.Sprintf("Шлях %s вказує на каталог, а не на файл вибірки.", fileName)
	}
	return ""
}

func main() {
	qt.NewQApplication(os.Args)
	window := qt.NewQMainWindow(nil)
	window.SetWindowTitle("Оцінювання ентропії та дивергенції Кульбака-Лейблера")
	window.SetMinimumSize2(800, 20)

	// Adding menu actions
	menuBar := window.MenuBar()

	fileMenu := qt.NewQMenu3("Файл")
	fileMenu.AddAction2(qt.QIcon_FromTheme("help-about"), "Про програму")
	fileMenu.AddAction2(qt.NewQIcon4(":/qt-project.org/qmessagebox/images/qtlogo-64.png"), "Про Qt")
	fileMenu.AddSeparator()
	fileMenu.AddAction2(qt.QIcon_FromTheme("application-exit"), "Вихід")
	menuBar.AddMenu(fileMenu)

	// Creating window layouts
	widget := qt.NewQWidget(nil)
	mainLayout := qt.NewQVBoxLayout(widget)
	filePickerLayout := qt.NewQGridLayout(widget)
	resultsLayout := qt.NewQGridLayout(widget)

	// Sample pickers
	pFileTextField := qt.NewQLineEdit(widget)
	pFileTextField.SetPlaceholderText("Введіть шлях до CSV-файлу вибірки P")
	pFilePickerButton := qt.NewQPushButton4(qt.QIcon_FromTheme("document-open"), "Вибір файлу")
	pickCSV(widget, pFilePickerButton, pFileTextField, "Виберіть вибірку P для аналізу")

	qFileTextField := qt.NewQLineEdit(widget)
	qFileTextField.SetPlaceholderText("Шлях до CSV-файлу вибірки Q (необов'язково, для дивергенції)")
	qFilePickerButton := qt.NewQPushButton4(qt.QIcon_FromTheme("document-open"), "Вибір файлу")
	pickCSV(widget, qFilePickerButton, qFileTextField, "Виберіть опорну вибірку Q")

	binsTextField := qt.NewQLineEdit(widget)
	binsTextField.SetPlaceholderText("Розбиття гістограми: scott, fd, sturges, 10, 10;20 або межі")
	binsTextField.SetText(binning.FreedmanDiaconis.String())

	bandwidthTextField := qt.NewQLineEdit(widget)
	bandwidthTextField.SetPlaceholderText("Ширина вікна ядра: scott, silverman або коефіцієнт")
	bandwidthTextField.SetText(kde.Scott().String())

	startButton := qt.NewQPushButton4(qt.QIcon_FromTheme("media-playback-start"), "Аналіз")

	filePickerLayout.AddWidget2(pFileTextField.QWidget, 0, 0)
	filePickerLayout.AddWidget2(pFilePickerButton.QWidget, 0, 1)
	filePickerLayout.AddWidget2(startButton.QWidget, 0, 2)
	filePickerLayout.AddWidget2(qFileTextField.QWidget, 1, 0)
	filePickerLayout.AddWidget2(qFilePickerButton.QWidget, 1, 1)
	filePickerLayout.AddWidget3(binsTextField.QWidget, 2, 0, 1, 3)
	filePickerLayout.AddWidget3(bandwidthTextField.QWidget, 3, 0, 1, 3)

	// Values display widgets
	binCountsDisplay := qt.NewQLineEdit(widget)
	binCountsDisplay.SetReadOnly(true)

	histEntropyDisplay := qt.NewQLineEdit(widget)
	histEntropyDisplay.SetReadOnly(true)

	correctionDisplay := qt.NewQLineEdit(widget)
	correctionDisplay.SetReadOnly(true)

	differentialDisplay := qt.NewQLineEdit(widget)
	differentialDisplay.SetReadOnly(true)

	kdeEntropyDisplay := qt.NewQLineEdit(widget)
	kdeEntropyDisplay.SetReadOnly(true)

	divergenceDisplay := qt.NewQLineEdit(widget)
	divergenceDisplay.SetReadOnly(true)

	// Placing them in grid with their respecting labels
	resultsLayout.AddWidget2(qt.NewQLabel3("Кількість інтервалів (scott / fd / sturges)").QWidget, 1, 0)
	resultsLayout.AddWidget2(binCountsDisplay.QWidget, 1, 1)

	resultsLayout.AddWidget2(qt.NewQLabel3("Ентропія гістограми, нат").QWidget, 2, 0)
	resultsLayout.AddWidget2(histEntropyDisplay.QWidget, 2, 1)

	resultsLayout.AddWidget2(qt.NewQLabel3("Поправка на об'єм інтервалів, нат").QWidget, 3, 0)
	resultsLayout.AddWidget2(correctionDisplay.QWidget, 3, 1)

	resultsLayout.AddWidget2(qt.NewQLabel3("Диференціальна ентропія (гістограма), нат").QWidget, 4, 0)
	resultsLayout.AddWidget2(differentialDisplay.QWidget, 4, 1)

	resultsLayout.AddWidget2(qt.NewQLabel3("Диференціальна ентропія (ядерна оцінка), нат").QWidget, 5, 0)
	resultsLayout.AddWidget2(kdeEntropyDisplay.QWidget, 5, 1)

	resultsLayout.AddWidget2(qt.NewQLabel3("Дивергенція Кульбака-Лейблера D(P‖Q), нат").QWidget, 6, 0)
	resultsLayout.AddWidget2(divergenceDisplay.QWidget, 6, 1)

	// Combining sublayouts into the main layout
	mainLayout.AddLayout(filePickerLayout.QLayout)
	mainLayout.AddLayout(resultsLayout.QLayout)

	// Log window (read-only)
	logWindow := qt.NewQTextEdit4("Виведення протоколу роботи", widget)
	logWindow.SetReadOnly(true)
	logWindow.SetFont(qt.NewQFont2("monospace"))
	mainLayout.AddWidget(logWindow.QWidget)

	showError := func(message string) {
		errorWindow := qt.NewQErrorMessage(widget)
		errorWindow.ShowMessage(message)
	}

	startButton.OnClicked(func() {
		logWindow.Clear()
		for _, display := range []*qt.QLineEdit{binCountsDisplay, histEntropyDisplay, correctionDisplay, differentialDisplay, kdeEntropyDisplay, divergenceDisplay} {
			display.SetText("")
		}

		pFileName := strings.TrimSpace(pFileTextField.Text())
		qFileName := strings.TrimSpace(qFileTextField.Text())

		if pFileName == "" {
			showError("Шлях до файлу вибірки P порожній.")
			return
		}
		if message := checkInputFile(pFileName); message != "" {
			showError(message)
			return
		}
		if qFileName != "" {
			if message := checkInputFile(qFileName); message != "" {
				showError(message)
				return
			}
		}

		bins, binsErr := parse.Bins(binsTextField.Text())
		if binsErr != nil {
			showError(fmt.Sprintf("Некоректне розбиття гістограми: %s", binsErr))
			return
		}
		bandwidth, bandwidthErr := parse.Bandwidth(bandwidthTextField.Text())
		if bandwidthErr != nil {
			showError(fmt.Sprintf("Некоректна ширина вікна: %s", bandwidthErr))
			return
		}

		var logFile = fmt.Sprintf("%s.unitelog", pFileName)
		logFileHandle, logOpenErr := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if logOpenErr != nil {
			log.Printf("Не вдалося відкрити файл журналу: %s", logOpenErr)
			logFileHandle = os.Stderr
		} else {
			defer func(logFileHandle *os.File) {
				logCloseErr := logFileHandle.Close()
				if logCloseErr != nil {
					log.Printf("Не вдалося закрити файл журналу: %s", logCloseErr)
				}
			}(logFileHandle)
		}

		fileNormalLogger := log.New(logFileHandle, "", log.LstdFlags)
		fileErrorLogger := log.New(logFileHandle, "ERROR: ", log.LstdFlags)

		logLine := func(text string) {
			logWindow.Append(text)
			fileNormalLogger.Println(text)
		}
		logError := func(text string) {
			logWindow.Append(text)
			fileErrorLogger.Println(text)
		}

		logLine(fmt.Sprintf("Вибірка P: %s, розбиття: %s, ширина вікна: %s.", pFileName, bins, bandwidth))

		pData, pLoadErr := dataset.LoadCSV(pFileName)
		if pLoadErr != nil {
			logError(fmt.Sprintf("Не вдалося прочитати вибірку P: %s", pLoadErr))
			showError(pLoadErr.Error())
			return
		}
		rows, cols := pData.Dims()
		logLine(fmt.Sprintf("Прочитано %d спостережень розмірності %d.", rows, cols))

		req := analysis.Request{
			P:      pData,
			Bins:   bins,
			KDE:    []kde.Option{kde.WithBandwidth(bandwidth)},
			Logger: fileNormalLogger,
		}
		if qFileName != "" {
			qData, qLoadErr := dataset.LoadCSV(qFileName)
			if qLoadErr != nil {
				logError(fmt.Sprintf("Не вдалося прочитати вибірку Q: %s", qLoadErr))
				showError(qLoadErr.Error())
				return
			}
			req.Q = qData
			qRows, _ := qData.Dims()
			logLine(fmt.Sprintf("Опорна вибірка Q: %s, %d спостережень.", qFileName, qRows))
		}

		summary, runErr := analysis.Run(req)
		if runErr != nil {
			logError(fmt.Sprintf("Помилка оцінювання: %s", runErr))
			showError(runErr.Error())
			return
		}

		binCountsDisplay.SetText(fmt.Sprintf("%s / %s / %s",
			formatCounts(summary.Counts[binning.Scott]),
			formatCounts(summary.Counts[binning.FreedmanDiaconis]),
			formatCounts(summary.Counts[binning.Sturges])))
		for _, rule := range binning.Rules() {
			logLine(fmt.Sprintf("Рекомендована кількість інтервалів за правилом %s: %s", rule, formatCounts(summary.Counts[rule])))
		}

		histEntropyDisplay.SetText(formatNats(summary.Entropy))
		correctionDisplay.SetText(formatNats(summary.Correction))
		differentialDisplay.SetText(formatNats(summary.Differential()))
		logLine(fmt.Sprintf("Ентропія гістограми: %f нат, поправка: %f нат, диференціальна ентропія: %f нат.",
			summary.Entropy, summary.Correction, summary.Differential()))

		kdeEntropyDisplay.SetText(formatNats(summary.KDEEntropy))
		logLine(fmt.Sprintf("Диференціальна ентропія за ядерною оцінкою: %f нат.", summary.KDEEntropy))

		if summary.HasDivergence {
			divergenceDisplay.SetText(formatNats(summary.Divergence))
			logLine(fmt.Sprintf("Дивергенція Кульбака-Лейблера D(P‖Q): %f нат.", summary.Divergence))
		}

		for _, stage := range []string{analysis.StageBins, analysis.StageHistogram, analysis.StageKDE, analysis.StageDivergence} {
			if elapsed, ok := summary.Timings[stage]; ok {
				logLine(fmt.Sprintf("Час роботи %s: %s", stage, elapsed))
			}
		}
	})

	// Window deployment
	window.SetCentralWidget(widget)
	window.Show()
	qt.QApplication_Exec()
}
