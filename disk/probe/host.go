package probe

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/thoas/go-funk"
)

const procSwaps = "/proc/swaps"

// Mount 块设备的一个挂载点.
type Mount struct {
	Mountpoint string
	Fstype     string
}

// Swap 一个已启用的swap区.
type Swap struct {
	Filename string
	Type     string
	Size     int64
	Used     int64
	Priority int
}

// HostUsage 查询块设备在本机上的使用情况.
type HostUsage interface {
	Mounts(device string) []Mount
	Swaps() []Swap
}

type hostUsage struct{}

// deviceNames 设备路径及其符号链接目标.
func deviceNames(device string) []string {
	names := []string{device}
	if real, err := filepath.EvalSymlinks(device); err == nil && real != device {
		names = append(names, real)
	}
	return names
}

func (hostUsage) Mounts(device string) []Mount {
	parts, err := disk.Partitions(true)
	if err != nil {
		return nil
	}
	names := deviceNames(device)
	var mounts []Mount
	for _, p := range parts {
		if funk.ContainsString(names, p.Device) {
			mounts = append(mounts, Mount{Mountpoint: p.Mountpoint, Fstype: p.Fstype})
		}
	}
	return mounts
}

func (hostUsage) Swaps() []Swap {
	bs, err := os.ReadFile(procSwaps)
	if err != nil {
		return nil
	}
	return parseSwaps(string(bs))
}

// parseSwaps 解析/proc/swaps的内容, 大小以KiB为单位.
func parseSwaps(text string) (ss []Swap) {
	for _, line := range strings.Split(text, "\n") {
		items := strings.Fields(line)
		if len(items) < 5 || !strings.HasPrefix(items[0], "/") {
			continue
		}
		size, _ := strconv.ParseInt(items[2], 10, 64)
		used, _ := strconv.ParseInt(items[3], 10, 64)
		prio, _ := strconv.Atoi(items[4])
		ss = append(ss, Swap{
			Filename: items[0],
			Type:     items[1],
			Size:     size * 1024,
			Used:     used * 1024,
			Priority: prio,
		})
	}
	return ss
}

// activeSwap 返回设备对应的已启用swap区.
func activeSwap(u HostUsage, device string) (Swap, bool) {
	names := deviceNames(device)
	for _, s := range u.Swaps() {
		if funk.ContainsString(names, s.Filename) {
			return s, true
		}
	}
	return Swap{}, false
}
