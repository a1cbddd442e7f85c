package errors

import "errors"

// ErrTimeWindowConflict 车位在请求时间窗内已有 active 预约
// 并发准入的落败方也以此错误返回，属于正常业务结果而非基础设施故障
var ErrTimeWindowConflict = errors.New("车位在该时间段已被预约")
