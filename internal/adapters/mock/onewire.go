package mock

import (
	"fmt"

	"github.com/spf13/afero"
)

// OneWire builds an in-memory w1 sysfs tree under root with a single
// DS18S20 device reporting tenths, or an empty tree when withSensor is false.
func OneWire(root string, withSensor bool, tenths int) (afero.Fs, error) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll(root+"/w1_bus_master1", 0o755); err != nil {
		return nil, err
	}
	if !withSensor {
		return fs, nil
	}

	dir := root + "/10-000802b4c1a2"
	data := fmt.Sprintf("2d 00 4b 46 ff ff 02 10 19 : crc=19 YES\n2d 00 4b 46 ff ff 02 10 19 t=%d00\n", tenths)
	if err := afero.WriteFile(fs, dir+"/w1_slave", []byte(data), 0o644); err != nil {
		return nil, err
	}
	return fs, nil
}
