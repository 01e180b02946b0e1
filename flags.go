package squeeze

import "os"

const (
	S_IXOTH = 1 << iota // 00001
	S_IWOTH = 1 << iota // 00002
	S_IROTH = 1 << iota
	S_IXGRP = 1 << iota
	S_IWGRP = 1 << iota // 00020
	S_IRGRP = 1 << iota
	S_IXUSR = 1 << iota
	S_IWUSR = 1 << iota
	S_IRUSR = 1 << iota // 00400
)

// DefaultOutputMode is the permission mode new output files are created with,
// before the process umask is applied.
const DefaultOutputMode os.FileMode = S_IRUSR | S_IWUSR | S_IRGRP | S_IROTH
