package reco

type Configuration struct {
	FileIn               string    `json:"file_in" yaml:"file_in"`
	FileOut              string    `json:"file_out" yaml:"file_out"`
	SummaryFile          string    `json:"summary_file" yaml:"summary_file"`
	InputGroup           string    `json:"input_group" yaml:"input_group"`
	InputTable           string    `json:"input_table" yaml:"input_table"`
	MaxEvents            int       `json:"max_events" yaml:"max_events"`
	Skip                 int       `json:"skip" yaml:"skip"`
	Verbosity            int       `json:"verbosity" yaml:"verbosity"`
	NumWorkers           int       `json:"num_workers" yaml:"num_workers"`
	MergeNN              bool      `json:"merge_nn" yaml:"merge_nn"`
	SamePeak             bool      `json:"same_peak" yaml:"same_peak"`
	SliceThreshold       float64   `json:"slice_threshold" yaml:"slice_threshold"`
	ThresholdOnCorrected bool      `json:"threshold_on_corrected" yaml:"threshold_on_corrected"`
	CutSensors           bool      `json:"cut_sensors" yaml:"cut_sensors"`
	QThreshold           float64   `json:"q_threshold" yaml:"q_threshold"`
	DropDistance         []float64 `json:"drop_distance" yaml:"drop_distance"`
	DropMinimum          int       `json:"drop_minimum" yaml:"drop_minimum"`
	RedistributeVars     []string  `json:"redistribute_vars" yaml:"redistribute_vars"`
	CompressionLevel     int       `json:"compression_level" yaml:"compression_level"`
	RunNumber            int       `json:"run_number" yaml:"run_number"`
	PitchFromDB          bool      `json:"pitch_from_db" yaml:"pitch_from_db"`
	DBDriver             string    `json:"db_driver" yaml:"db_driver"`
	DetectorDB           string    `json:"detector_db" yaml:"detector_db"`
	Host                 string    `json:"host" yaml:"host"`
	User                 string    `json:"user" yaml:"user"`
	Passwd               string    `json:"pass" yaml:"pass"`
	DBName               string    `json:"dbname" yaml:"dbname"`
}

var configuration Configuration

func SetConfiguration(config Configuration) {
	configuration = config
}
