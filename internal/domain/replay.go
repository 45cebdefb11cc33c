package domain

// RecordType - тип записи в логе хода
type RecordType uint8

const (
	RecordUnknown RecordType = iota
	RecordMove
	RecordAttack
	RecordHeal
)

var recordTypeToString = map[RecordType]string{
	RecordMove:   "move",
	RecordAttack: "attack",
	RecordHeal:   "heal",
}

var recordStringToType = map[string]RecordType{
	"move":   RecordMove,
	"attack": RecordAttack,
	"heal":   RecordHeal,
}

func (t RecordType) String() string {
	if val, ok := recordTypeToString[t]; ok {
		return val
	}
	return "unknown"
}

// ParseRecordType конвертирует строку из реплея в RecordType
func ParseRecordType(s string) RecordType {
	if val, ok := recordStringToType[s]; ok {
		return val
	}
	return RecordUnknown
}

// ActionRecord - одна запись действия за ход
type ActionRecord struct {
	Type        RecordType
	Actor       UnitID
	Target      UnitID // NilUnitID для move
	Origin      Position
	Destination Position
	Amount      int // Эффективный урон или лечение; у move всегда 0
}

// HasTarget - у move цели нет
func (r ActionRecord) HasTarget() bool {
	return r.Target != NilUnitID
}

// HasAmount - у move нет величины
func (r ActionRecord) HasAmount() bool {
	return r.Type == RecordAttack || r.Type == RecordHeal
}

// TurnRecord - полная запись одного хода
type TurnRecord struct {
	Number  int
	Actions []ActionRecord
}
