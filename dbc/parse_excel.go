package dbc

import (
	"strconv"

	"github.com/xuri/excelize/v2"
)

const (
	CanId = iota
	CanName
	PeriodOfTx
	MsgLen
	StartByte
	StartBit
	BitWidth
	SignalName
	SignalSymbol
	TransmitterECU
	ExcelMaxColumn
)

// ParseExcel reads a spreadsheet export of a DBC ("DBC" sheet, one row
// per signal) and returns the resulting document. Unlike the original
// version of this loader it does not touch a package-level global, for
// the same reason Parser no longer does (see parse.go).
func ParseExcel(filename string) (*DbcVO, bool) {
	data := &DbcVO{BoVoMap: make(map[uint64]*BoVO)}

	f, err := excelize.OpenFile(filename)
	if err != nil {
		log.Errorln(err)
		return nil, false
	}
	defer f.Close()

	//获取DBC Sheet上所有单元格
	rows, err := f.GetRows("DBC")
	if err != nil {
		log.Errorln(err)
		return nil, false
	}

	for idx, row := range rows {
		if idx <= 0 {
			continue
		}

		if len(row) < ExcelMaxColumn {
			log.Errorf("Invalid number of columns! want(%d), has(%d)", ExcelMaxColumn, len(row))
			return nil, false
		}

		var boVO BoVO
		boVO.CanId, _ = strconv.ParseUint(row[CanId], 10, 64)
		boVO.CanName = row[CanName]
		boVO.DataLenth, _ = strconv.ParseUint(row[MsgLen], 10, 64)

		var sgVO SgVO
		sgVO.StartBit, _ = strconv.Atoi(row[StartBit])
		sgVO.BitWidth, _ = strconv.Atoi(row[BitWidth])
		sgVO.SignalName = row[SignalName]
		// The excel export carries no factor/offset columns; scaling
		// defaults to identity (Factor 1, Offsets 0).
		sgVO.Factor = 1

		if _, ok := data.BoVoMap[boVO.CanId]; !ok {
			boVO.SgVoMap = map[string]*SgVO{sgVO.SignalName: &sgVO}
			boVO.OrderedSignals = []string{sgVO.SignalName}
			data.BoVoMap[boVO.CanId] = &boVO
		} else {
			existing := data.BoVoMap[boVO.CanId]
			if existing.SgVoMap == nil {
				existing.SgVoMap = make(map[string]*SgVO)
			}
			existing.SgVoMap[sgVO.SignalName] = &sgVO
			existing.OrderedSignals = append(existing.OrderedSignals, sgVO.SignalName)
		}
	}

	return data, true
}
