package api_router

import (
	"os"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/aigility/cloud-vault-service/internal/app"
	pkgapp "github.com/aigility/cloud-vault-service/pkg/app"
	"github.com/aigility/cloud-vault-service/pkg/code"
)

// HealthHandler serves liveness and system status.
type HealthHandler struct {
	*Handler
}

func NewHealthHandler(a *app.App) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(a)}
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status   string  `json:"status"`
	Version  string  `json:"version"`
	Uptime   float64 `json:"uptime"`
	Database string  `json:"database"`
}

// Check reports service health including the database connection.
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /api/health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	response := HealthResponse{
		Status:   "healthy",
		Version:  h.App.Version().Version,
		Uptime:   time.Since(h.App.StartTime).Seconds(),
		Database: "connected",
	}

	if err := h.App.DB.Raw("SELECT 1").Error; err != nil {
		response.Status = "unhealthy"
		response.Database = "error"
		pkgapp.NewResponse(c).ToResponse(code.Failed.WithData(response))
		return
	}

	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(response))
}

// SystemInfo is the system status payload.
type SystemInfo struct {
	StartTime time.Time   `json:"startTime"`
	Uptime    float64     `json:"uptime"`
	Runtime   RuntimeInfo `json:"runtime"`
	CPU       CPUInfo     `json:"cpu"`
	Memory    MemoryInfo  `json:"memory"`
	Host      HostInfo    `json:"host"`
	Process   ProcessInfo `json:"process"`
}

type RuntimeInfo struct {
	GoVersion  string `json:"goVersion"`
	Goroutines int    `json:"goroutines"`
	HeapAlloc  uint64 `json:"heapAlloc"`
	HeapSys    uint64 `json:"heapSys"`
	NumGC      uint32 `json:"numGc"`
}

type CPUInfo struct {
	ModelName     string    `json:"modelName"`
	PhysicalCores int       `json:"physicalCores"`
	LogicalCores  int       `json:"logicalCores"`
	Percent       []float64 `json:"percent"`
	LoadAvg       *LoadInfo `json:"loadAvg"`
}

type LoadInfo struct {
	Load1  float64 `json:"load1"`
	Load5  float64 `json:"load5"`
	Load15 float64 `json:"load15"`
}

type MemoryInfo struct {
	Total       uint64  `json:"total"`
	Available   uint64  `json:"available"`
	Used        uint64  `json:"used"`
	UsedPercent float64 `json:"usedPercent"`
}

type HostInfo struct {
	Hostname        string `json:"hostname"`
	OS              string `json:"os"`
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platformVersion"`
	KernelArch      string `json:"kernelArch"`
	BootTime        uint64 `json:"bootTime"`
}

type ProcessInfo struct {
	PID           int32   `json:"pid"`
	CPUPercent    float64 `json:"cpuPercent"`
	MemoryRSS     uint64  `json:"memoryRss"`
	MemoryPercent float32 `json:"memoryPercent"`
}

// Status reports host and process metrics.
// @Summary System status
// @Tags System
// @Security UserAuthToken
// @Router /api/system/status [get]
func (h *HealthHandler) Status(c *gin.Context) {
	info := SystemInfo{
		StartTime: h.App.StartTime,
		Uptime:    time.Since(h.App.StartTime).Seconds(),
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	info.Runtime = RuntimeInfo{
		GoVersion:  runtime.Version(),
		Goroutines: runtime.NumGoroutine(),
		HeapAlloc:  ms.HeapAlloc,
		HeapSys:    ms.HeapSys,
		NumGC:      ms.NumGC,
	}

	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		info.CPU.ModelName = infos[0].ModelName
	}
	if physical, err := cpu.Counts(false); err == nil {
		info.CPU.PhysicalCores = physical
	}
	if logical, err := cpu.Counts(true); err == nil {
		info.CPU.LogicalCores = logical
	}
	if percent, err := cpu.Percent(0, true); err == nil {
		info.CPU.Percent = percent
	}
	if avg, err := load.Avg(); err == nil {
		info.CPU.LoadAvg = &LoadInfo{Load1: avg.Load1, Load5: avg.Load5, Load15: avg.Load15}
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		info.Memory = MemoryInfo{
			Total:       vm.Total,
			Available:   vm.Available,
			Used:        vm.Used,
			UsedPercent: vm.UsedPercent,
		}
	}

	if hi, err := host.Info(); err == nil {
		info.Host = HostInfo{
			Hostname:        hi.Hostname,
			OS:              hi.OS,
			Platform:        hi.Platform,
			PlatformVersion: hi.PlatformVersion,
			KernelArch:      hi.KernelArch,
			BootTime:        hi.BootTime,
		}
	}

	pid := int32(os.Getpid())
	if p, err := process.NewProcess(pid); err == nil {
		pi := ProcessInfo{PID: pid}
		if cpuPercent, err := p.CPUPercent(); err == nil {
			pi.CPUPercent = cpuPercent
		}
		if memInfo, err := p.MemoryInfo(); err == nil && memInfo != nil {
			pi.MemoryRSS = memInfo.RSS
		}
		if memPercent, err := p.MemoryPercent(); err == nil {
			pi.MemoryPercent = memPercent
		}
		info.Process = pi
	}

	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(info))
}
